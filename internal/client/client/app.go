package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/healthcomp/internal/client/api"
	"github.com/dmitrijs2005/healthcomp/internal/client/cache"
	"github.com/dmitrijs2005/healthcomp/internal/client/credentials"
	"github.com/dmitrijs2005/healthcomp/internal/client/services"
	"github.com/dmitrijs2005/healthcomp/internal/client/telemetry"
	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
	"github.com/dmitrijs2005/healthcomp/internal/logging"
)

// Options configures New. Zero values fall back to in-memory credentials,
// a no-op reporter and a discarding logger.
type Options struct {
	BackendURL  string
	FrontendURL string
	// DatabasePath is the sqlite file for credentials; empty keeps them in
	// memory.
	DatabasePath string
	SingleFlight bool

	Logger     logging.Logger
	Reporter   telemetry.Reporter
	HTTPClient transport.Doer
	Viewer     *api.Viewer
}

type App struct {
	API         *api.Service
	Auth        services.AuthService
	Transport   *transport.Client
	Credentials credentials.Store
	FrontendURL string

	db *sql.DB
}

// APIURL derives the REST root from the backend address.
func APIURL(backendURL string) string {
	return strings.TrimSuffix(backendURL, "/") + "/api/"
}

func New(ctx context.Context, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = telemetry.NopReporter{}
	}

	app := &App{FrontendURL: opts.FrontendURL}

	if opts.DatabasePath == "" {
		app.Credentials = credentials.NewMemoryStore(credentials.Pair{})
	} else {
		db, err := InitDatabase(ctx, opts.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		app.db = db
		app.Credentials = credentials.NewSQLiteStore(db)
	}

	topts := []transport.Option{
		transport.WithLogger(logger.With("component", "transport")),
		transport.WithReporter(reporter),
	}
	if opts.HTTPClient != nil {
		topts = append(topts, transport.WithHTTPClient(opts.HTTPClient))
	}
	tc, err := transport.New(APIURL(opts.BackendURL), app.Credentials, topts...)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Transport = tc

	aopts := []api.Option{api.WithCacheOptions(cache.WithSingleFlight(opts.SingleFlight))}
	if opts.Viewer != nil {
		aopts = append(aopts, api.WithViewer(*opts.Viewer))
	}
	app.API = api.NewService(tc, aopts...)
	app.Auth = services.NewAuthService(tc, app.Credentials, app.API, logger.With("component", "auth"))

	return app, nil
}

// RequireSession fails with ErrNotLoggedIn when no credentials are held.
func (a *App) RequireSession(ctx context.Context) error {
	pair, err := a.Credentials.Get(ctx)
	if err != nil {
		return err
	}
	if pair.Empty() {
		return ErrNotLoggedIn
	}
	return nil
}

// StravaLinkURL is the frontend page that starts Strava linking.
func (a *App) StravaLinkURL() string {
	return a.API.Strava.LinkURL(a.FrontendURL)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
