/*
Package identity resolves bearer credentials to user identities.

Verification runs exactly once per connection, before any session exists:
the credential's signature and expiry are checked, then its userId claim is
resolved against the user store. A connection whose credential fails any of
these checks is closed without ever reaching the room registry.
*/
package identity

import (
	"context"

	"parley/internal/app/db"
	"parley/internal/app/user"
	"parley/internal/pkg/auth/jwt"
	"parley/internal/pkg/errs"
	"parley/internal/pkg/logx"
)

// UserSource resolves a user ID to an identity.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (user.Identity, error)
}

// Verifier validates bearer credentials against the signing secret and the user store.
type Verifier struct {
	users  UserSource
	secret string
}

// NewVerifier constructs a Verifier backed by the given user source and signing secret.
func NewVerifier(users UserSource, secret string) *Verifier {
	return &Verifier{
		users:  users,
		secret: secret,
	}
}

// Verify validates the credential and resolves it to an identity.
// Failures are classified as missing, invalid, expired, or unknown-user;
// all of them are fatal to the connection being established.
func (v *Verifier) Verify(ctx context.Context, credential string) (user.Identity, *errs.CustomError) {
	if credential == "" {
		return user.Identity{}, errs.NewError(errs.ErrTokenMissing)
	}

	claims, err := jwt.ParseToken(credential, v.secret)
	if err != nil {
		if err == jwt.ErrExpired {
			return user.Identity{}, errs.NewError(errs.ErrTokenExpired)
		}
		return user.Identity{}, errs.NewError(errs.ErrTokenInvalid)
	}

	ident, err := v.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return user.Identity{}, errs.NewError(errs.ErrUserNotFound)
		}

		logx.Error(err, "Identity lookup failed", "user_id", claims.UserID)
		return user.Identity{}, errs.NewError(errs.ErrUnknown)
	}

	return ident, nil
}
