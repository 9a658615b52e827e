/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains HandleWebSocket, which verifies the bearer credential
before the protocol upgrade, creates the chat session, and starts its pumps.
A connection that fails verification is closed with 401 and never reaches
the room registry.
*/
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"parley/internal/pkg/errs"
	"parley/internal/pkg/limiter"
	"parley/internal/pkg/logx"
	"parley/internal/pkg/resp"
)

// bearerCredential extracts the token supplied at handshake, preferring the
// Authorization header and falling back to the token query parameter
// (browser WebSocket clients cannot set headers).
func bearerCredential(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	return r.URL.Query().Get("token")
}

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rateLimiter.Allow(r.RemoteAddr) {
			logx.Warn("WebSocket connection rejected: rate limit exceeded")
			resp.RespondError(w, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), deps.Config.AuthTimeout)
		defer cancel()

		ident, authErr := deps.Verifier.Verify(ctx, bearerCredential(r))
		if authErr != nil {
			logx.Warn("WebSocket connection rejected: verification failed", "code", authErr.Code)
			resp.RespondError(w, authErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		session := deps.Manager.Connect(conn, ident)

		go session.WritePump()

		logx.Info("WebSocket connection established",
			"user_id", ident.ID, "username", ident.Username)

		session.ReadPump()
	}
}
