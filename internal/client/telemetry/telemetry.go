// Package telemetry is the observability sink for failed backend calls.
//
// The transport reports every failure that is not an expected transient
// condition; this package turns each report into an OpenTelemetry span so
// it reaches whatever collector the process is configured with.
package telemetry

import (
	"context"
	"net/url"
)

// Event describes one failed exchange with the backend.
type Event struct {
	// Source names the layer that observed the failure, e.g. "transport".
	Source   string
	Endpoint string
	Method   string
	Path     string
	Query    url.Values
	// Status is the HTTP status, or 0 for network faults.
	Status int
	Body   []byte
	Err    error
}

// Reporter receives failure events. Implementations must not block for long.
type Reporter interface {
	Report(ctx context.Context, evt Event)
}

// NopReporter drops every event.
type NopReporter struct{}

func (NopReporter) Report(context.Context, Event) {}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(ctx context.Context, evt Event)

func (f ReporterFunc) Report(ctx context.Context, evt Event) { f(ctx, evt) }
