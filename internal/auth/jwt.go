// Package auth inspects the bearer tokens issued by the product service. The
// signing key lives with the service, so claims are read without verification
// and only used to decide whether a stored session is still worth restoring.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

// Claims are the fields the dashboard reads from a token.
type Claims struct {
	Subject   string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// DecodeToken reads the claims of tokenStr without checking its signature.
func DecodeToken(tokenStr string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	var c Claims
	c.Subject, _ = claims.GetSubject()
	c.UserID = stringClaim(claims, "userId", "id", "_id")
	if c.UserID == "" {
		c.UserID = c.Subject
	}
	c.Email = stringClaim(claims, "email")
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// Expired reports whether tokenStr carries an expiry at or before now. Opaque
// tokens and tokens without exp are left for the service to reject.
func Expired(tokenStr string, now time.Time) bool {
	c, err := DecodeToken(tokenStr)
	if err != nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
