// Package tokens inspects backend session tokens without verifying them.
// The gateway never holds the signing key — verification belongs to the
// login service — but the claims are still useful client-side to avoid a
// validation round-trip for a token that is plainly past its expiry.
package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields of interest decoded from a session token.
type Claims struct {
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

// Decode parses the token without signature verification and extracts the
// claims the gateway cares about. Returns an error for structurally invalid
// tokens.
func Decode(token string) (*Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, err
	}

	c := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		c.Username = sub
	}
	if username, ok := mapClaims["username"].(string); ok {
		c.Username = username
	}
	if raw, ok := mapClaims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				c.Roles = append(c.Roles, s)
			}
		}
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Undecodable tokens and tokens without exp are not reported as expired;
// the backend has the final word on those.
func Expired(token string, now time.Time) bool {
	c, err := Decode(token)
	if err != nil {
		return false
	}
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
