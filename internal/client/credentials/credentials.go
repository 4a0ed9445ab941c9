// Package credentials holds the access/refresh token pair and the stores
// that persist it between runs.
//
// Lifecycle: login creates the pair, a successful refresh replaces it, and
// logout or a rejected refresh clears it. Only the transport and the auth
// service write to a Store.
package credentials

import (
	"context"
	"errors"
)

const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

var ErrMalformedToken = errors.New("malformed token")

// Pair is the credential pair issued by the backend.
type Pair struct {
	Access  string
	Refresh string
}

// Empty reports whether neither token is held.
func (p Pair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store persists a single Pair. Set replaces whatever was held before.
type Store interface {
	Get(ctx context.Context) (Pair, error)
	Set(ctx context.Context, p Pair) error
	Clear(ctx context.Context) error
}
