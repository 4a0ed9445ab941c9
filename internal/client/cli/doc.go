// Package cli provides the interactive healthcomp command-line client.
//
// It wires the client facade into a REPL: log in, browse workouts,
// competitions, teams, stats and feeds, log and delete workouts, join
// competitions and teams, and link Strava.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
