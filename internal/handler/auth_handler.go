/*
Package handler provides HTTP handler functions for user registration and login.
*/
package handler

import (
	"net/http"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"parley/internal/app/db"
	"parley/internal/pkg/auth/jwt"
	"parley/internal/pkg/errs"
	"parley/internal/pkg/logx"
	"parley/internal/pkg/req"
	"parley/internal/pkg/resp"
)

const (
	minUsernameChars = 3
	maxUsernameChars = 30
	minPasswordChars = 6
	maxPasswordChars = 72
)

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userBody is the user object returned by register and login.
type userBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type authBody struct {
	Token string   `json:"token"`
	User  userBody `json:"user"`
}

// HandleRegister creates a new user account and issues a signed credential.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input credentialsInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, customErr)
			return
		}

		usernameLen := utf8.RuneCountInString(input.Username)
		if usernameLen < minUsernameChars || usernameLen > maxUsernameChars {
			resp.RespondError(w, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		passwordLen := utf8.RuneCountInString(input.Password)
		if passwordLen < minPasswordChars || passwordLen > maxPasswordChars {
			resp.RespondError(w, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, errs.NewError(errs.ErrUnknown, err))
			return
		}

		rec, err := deps.DB.CreateUser(r.Context(), input.Username, string(hashedPassword))
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("Registration conflict: username already exists", "username", input.Username)
				resp.RespondError(w, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			resp.RespondError(w, errs.NewError(errs.ErrUnknown, err))
			return
		}

		token, err := jwt.GenerateToken(rec.ID, deps.Config.JWTSecret, jwt.TokenExpiration)
		if err != nil {
			resp.RespondError(w, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, authBody{
			Token: token,
			User:  userBody{ID: rec.ID, Username: rec.Username},
		})
	}
}

// HandleLogin verifies user credentials and issues a signed credential.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input credentialsInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, customErr)
			return
		}

		rec, err := deps.DB.GetUserByUsername(r.Context(), input.Username)
		if err != nil {
			if !db.IsNotFound(err) {
				logx.Error(err, "Login: user fetch failed", "username", input.Username)
			}
			resp.RespondError(w, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("Login: password mismatch", "username", input.Username)
			resp.RespondError(w, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := jwt.GenerateToken(rec.ID, deps.Config.JWTSecret, jwt.TokenExpiration)
		if err != nil {
			resp.RespondError(w, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, authBody{
			Token: token,
			User:  userBody{ID: rec.ID, Username: rec.Username},
		})
	}
}
