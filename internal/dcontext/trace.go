package dcontext

import "context"

type traceIDKey struct{}

// WithTraceID attaches a trace identifier to the context. The updater uses
// this to correlate every log line emitted by one tag update, including the
// lines produced by stage-2 workers running concurrently.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// GetStringValue returns the string stored at key, or the empty string if
// absent or not a string.
func GetStringValue(ctx context.Context, key any) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// GetTraceID returns the trace identifier attached by WithTraceID, if any.
func GetTraceID(ctx context.Context) string {
	return GetStringValue(ctx, traceIDKey{})
}
