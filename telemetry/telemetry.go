// Package telemetry wires the engine's translate/cache/check activity to
// OpenTelemetry metrics and tracing. It asks for no concrete SDK or
// exporter: like any well-behaved instrumented library, it reads whatever
// MeterProvider/TracerProvider the embedding process has installed as the
// global default, falling back to OpenTelemetry's no-op implementations
// when nothing has been configured.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/pitabwire/catalog"

// Recorder records translate/cache/check activity against the global
// OpenTelemetry providers.
type Recorder struct {
	tracer trace.Tracer

	translateCount metric.Int64Counter
	cacheHitCount  metric.Int64Counter
	checkErrCount  metric.Int64Counter
	checkWarnCount metric.Int64Counter
	loadTokenCount metric.Int64Gauge
}

// NewRecorder builds a Recorder against the currently installed global
// OpenTelemetry providers. Instrument-creation errors are not fatal: the
// corresponding counters simply stay nil and record* calls become no-ops,
// so a misconfigured meter never breaks catalog resolution.
func NewRecorder() *Recorder {
	meter := otel.Meter(instrumentationName)

	r := &Recorder{tracer: otel.Tracer(instrumentationName)}
	r.translateCount, _ = meter.Int64Counter("catalog.translate.count",
		metric.WithDescription("number of Translate/TranslatePlural calls"))
	r.cacheHitCount, _ = meter.Int64Counter("catalog.cache.hits",
		metric.WithDescription("number of resolver cache hits"))
	r.checkErrCount, _ = meter.Int64Counter("catalog.check.errors",
		metric.WithDescription("number of integrity errors found across all check runs"))
	r.checkWarnCount, _ = meter.Int64Counter("catalog.check.warnings",
		metric.WithDescription("number of integrity warnings found across all check runs"))
	r.loadTokenCount, _ = meter.Int64Gauge("catalog.load.tokens",
		metric.WithDescription("token count of the most recently published snapshot"))
	return r
}

// RecordTranslate increments the translate counter for token.
func (r *Recorder) RecordTranslate(ctx context.Context, token string) {
	if r == nil || r.translateCount == nil {
		return
	}
	r.translateCount.Add(ctx, 1, metric.WithAttributes(attribute.String("token", token)))
}

// RecordCacheHit increments the resolver cache hit counter.
func (r *Recorder) RecordCacheHit(ctx context.Context) {
	if r == nil || r.cacheHitCount == nil {
		return
	}
	r.cacheHitCount.Add(ctx, 1)
}

// RecordCheck records the error/warning counts of a completed integrity check.
func (r *Recorder) RecordCheck(ctx context.Context, errCount, warnCount int) {
	if r == nil {
		return
	}
	if r.checkErrCount != nil {
		r.checkErrCount.Add(ctx, int64(errCount))
	}
	if r.checkWarnCount != nil {
		r.checkWarnCount.Add(ctx, int64(warnCount))
	}
}

// RecordLoad records the token count of a freshly published snapshot.
func (r *Recorder) RecordLoad(ctx context.Context, tokenCount int) {
	if r == nil || r.loadTokenCount == nil {
		return
	}
	r.loadTokenCount.Record(ctx, int64(tokenCount))
}

// StartSpan opens a span named name, returning the derived context and the
// span so the caller can End() it.
func (r *Recorder) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if r == nil || r.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return r.tracer.Start(ctx, name)
}

