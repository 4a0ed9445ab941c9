// Package client wires the healthcomp client together.
//
// # Overview
//
// The package provides:
//  1. App, the facade the CLI talks to. It owns the credential store, the
//     authenticated transport, the cached api.Service and the AuthService.
//  2. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     that open the SQLite file holding the credential pair and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// ErrNotLoggedIn is returned by App.RequireSession when no credentials are
// held. Transport errors are passed through unchanged; classify them with
// transport.Classify.
//
// See Also
//
//   - Facade:     App, New
//   - DB helpers: InitDatabase, RunMigrations
package client
