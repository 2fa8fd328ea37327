package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what whoami shows about the bearer token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the claims carry an expiry before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying the signature.
// The backend is the only party able to verify it; the client only displays
// the values. ok is false for tokens that are not JWTs.
func InspectToken(token string) (TokenClaims, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, false
	}
	out := TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, true
}
