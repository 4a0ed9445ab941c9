package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/dmitrijs2005/healthcomp/internal/client/telemetry"
	spanName   = "transport.error"

	// bodyLimit caps how much of a response body is attached to a span.
	bodyLimit = 2048
)

// OTelReporter records one span per event.
type OTelReporter struct {
	tracer trace.Tracer
}

var _ Reporter = (*OTelReporter)(nil)

// NewOTelReporter uses tp, or the global tracer provider when tp is nil.
func NewOTelReporter(tp trace.TracerProvider) *OTelReporter {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &OTelReporter{tracer: tp.Tracer(tracerName)}
}

func (r *OTelReporter) Report(ctx context.Context, evt Event) {
	_, span := r.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("error.source", evt.Source),
		attribute.String("error.type", "network-or-server"),
		attribute.Int("error.status", evt.Status),
		attribute.String("http.request.method", evt.Method),
		attribute.String("url.path", evt.Path),
	}
	if evt.Endpoint != "" {
		attrs = append(attrs, attribute.String("request.endpoint", evt.Endpoint))
	}
	if len(evt.Query) > 0 {
		attrs = append(attrs, attribute.String("url.query", evt.Query.Encode()))
	}
	if len(evt.Body) > 0 {
		body := evt.Body
		if len(body) > bodyLimit {
			body = body[:bodyLimit]
		}
		attrs = append(attrs, attribute.String("response.body", string(body)))
	}
	span.SetAttributes(attrs...)

	err := evt.Err
	if err == nil {
		err = fmt.Errorf("backend responded with status %d", evt.Status)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Setup installs a global tracer provider exporting over OTLP/HTTP to
// endpoint. An empty endpoint leaves tracing disabled and returns a no-op
// shutdown.
func Setup(ctx context.Context, endpoint, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil && !errors.Is(err, resource.ErrPartialResource) {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
