package handler

import (
	"parley/internal/app/chat"
	"parley/internal/app/db"
	"parley/internal/app/identity"
	"parley/internal/configs"
)

// AppDeps bundles the collaborators every handler needs.
type AppDeps struct {
	Manager  *chat.Manager
	Verifier *identity.Verifier
	Config   *configs.AppConfig
	DB       *db.Queries
}
