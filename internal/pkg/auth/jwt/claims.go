package jwt

import "github.com/golang-jwt/jwt"

// Claims defines the structure of the JSON Web Token claims issued by the server.
// Besides the standard fields required for validity checks, it carries the
// userId claim that the identity verifier resolves against the user store.
type Claims struct {
	// StandardClaims embeds the standard JWT fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer).
	jwt.StandardClaims

	// UserID is the unique identifier of the authenticated user.
	UserID string `json:"userId"`
}
