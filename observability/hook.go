package observability

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/registry-api/logger"
)

// TraceHook adds trace_id and span_id to events whose context carries a
// valid span. Use it with Logger.WithContext.
type TraceHook struct{}

// Run implements zerolog.Hook.
func (TraceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	e.Str(logger.FieldTraceID, sc.TraceID().String())
	e.Str(logger.FieldSpanID, sc.SpanID().String())
}
