// Package tokeninfo reads the public claims of a bearer token for display.
// Signatures are not verified; the remote API remains the only judge of
// validity.
package tokeninfo

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info holds the claims the dashboard shows.
type Info struct {
	Subject   string
	Algorithm string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (i Info) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Inspect decodes token without checking its signature. Opaque (non-JWT)
// tokens return an error.
func Inspect(token string) (Info, error) {
	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return Info{}, fmt.Errorf("decode token: %w", err)
	}

	var info Info
	if parsed.Method != nil {
		info.Algorithm = parsed.Method.Alg()
	}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		info.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time.UTC()
		info.IssuedAt = &t
	}
	return info, nil
}
