package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client can read out of a bearer token for
// display. The token is parsed unverified: signature validation belongs
// to the server, which holds the secret.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// ParseClaims extracts display claims from token. A malformed token yields
// ok=false; the session itself stays valid, the server is the judge.
func ParseClaims(token string) (TokenClaims, bool) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return TokenClaims{}, false
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, false
	}

	var claims TokenClaims
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, true
}
