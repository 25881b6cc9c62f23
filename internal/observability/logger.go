package observability

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrEnv     = "env"
)

// NewLogger builds the logger described by cfg. Every record carries the
// service name, the environment when set, and the ids of the span active in
// the logging context.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var base slog.Handler
	if cfg.LogJSON {
		base = slog.NewJSONHandler(out, handlerOpts)
	} else {
		base = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(WithSpanContext(base.WithAttrs(serviceAttrs(cfg))))
}

func serviceAttrs(cfg Config) []slog.Attr {
	attrs := []slog.Attr{slog.String(attrService, cfg.ServiceName)}
	if cfg.Environment != "" {
		attrs = append(attrs, slog.String(attrEnv, cfg.Environment))
	}

	return attrs
}

// spanHandler stamps records logged under a recording span with its ids.
type spanHandler struct {
	next slog.Handler
}

// WithSpanContext wraps next so records whose context holds a valid span
// context gain trace_id and span_id attributes.
func WithSpanContext(next slog.Handler) slog.Handler {
	return spanHandler{next: next}
}

func (h spanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h spanHandler) Handle(ctx context.Context, rec slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		rec = rec.Clone()
		rec.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, rec)
}

func (h spanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return spanHandler{next: h.next.WithAttrs(attrs)}
}

func (h spanHandler) WithGroup(name string) slog.Handler {
	return spanHandler{next: h.next.WithGroup(name)}
}
