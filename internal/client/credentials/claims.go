package credentials

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client reads out of an access token for display.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID any `json:"user_id"`
}

// Peek decodes token without verifying its signature. The backend remains
// the only authority on validity; this is for showing session status.
func Peek(token string) (Claims, error) {
	var c accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	out := Claims{UserID: c.Subject}
	if c.UserID != nil {
		out.UserID = fmt.Sprint(c.UserID)
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

// Expired reports whether the claims carry an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
