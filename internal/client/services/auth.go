// Package services contains application services for the healthcomp client.
// This file defines the authentication service: login, logout and session
// status derived from the stored credential pair.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthcomp/internal/client/credentials"
	"github.com/dmitrijs2005/healthcomp/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange email/password for a token pair and store it.
//   - Logout: clear the stored pair and every cached resource.
//   - Status: describe the stored session without contacting the backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) (Session, error)
}

// TokenIssuer obtains a fresh pair for login credentials.
type TokenIssuer interface {
	ObtainPair(ctx context.Context, email, password string) (credentials.Pair, error)
}

// Purger empties cached data that must not outlive a session.
type Purger interface {
	Purge()
}

// Session is the locally known state of the signed-in user.
type Session struct {
	LoggedIn bool
	UserID   string
	// ExpiresAt is the access token expiry, zero when unknown.
	ExpiresAt time.Time
	// Expired is set once the access token is past its expiry. The next
	// request will refresh it if CanRefresh.
	Expired    bool
	CanRefresh bool
}

type authService struct {
	issuer TokenIssuer
	store  credentials.Store
	caches Purger
	logger logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService. caches may be nil.
func NewAuthService(issuer TokenIssuer, store credentials.Store, caches Purger, logger logging.Logger) AuthService {
	return &authService{issuer: issuer, store: store, caches: caches, logger: logger, now: time.Now}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	pair, err := a.issuer.ObtainPair(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Set(ctx, pair); err != nil {
		return fmt.Errorf("credentials saving error: %w", err)
	}
	// Another account's data may still be cached.
	a.purge()
	a.logger.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("credentials clearing error: %w", err)
	}
	a.purge()
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) Status(ctx context.Context) (Session, error) {
	pair, err := a.store.Get(ctx)
	if err != nil {
		return Session{}, err
	}
	if pair.Empty() {
		return Session{}, nil
	}

	s := Session{LoggedIn: true, CanRefresh: pair.Refresh != ""}
	if pair.Access == "" {
		s.Expired = true
		return s, nil
	}

	claims, err := credentials.Peek(pair.Access)
	if err != nil {
		a.logger.Warn(ctx, "stored access token is unreadable", "error", err)
		s.Expired = true
		return s, nil
	}
	s.UserID = claims.UserID
	s.ExpiresAt = claims.ExpiresAt
	s.Expired = claims.Expired(a.now())
	return s, nil
}

func (a *authService) purge() {
	if a.caches != nil {
		a.caches.Purge()
	}
}
