package logging

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type contextKey string

const traceIDKey contextKey = "holocron_trace_id"

// entropy is shared by all ULID generation; ulid.Monotonic is not goroutine safe.
//
//nolint:gochecknoglobals // Shared entropy source guarded by entropyMu.
var (
	entropy   = ulid.Monotonic(rand.Reader, 0)
	entropyMu sync.Mutex
)

// NewID returns a new ULID string. Used for trace IDs and fetch cycle IDs.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID from ctx, generating one if absent.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewID()
}

// FromContext returns the logger attached to ctx, enriched with the trace ID when present.
// Without an attached logger zerolog's disabled logger is returned, so callers never need
// a nil check.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	logger := zerolog.Ctx(ctx)
	if traceID := TraceIDFromContext(ctx); traceID != "" && logger.GetLevel() != zerolog.Disabled {
		l := logger.With().Str("trace_id", traceID).Logger()
		return &l
	}
	return logger
}
