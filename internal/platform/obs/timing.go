package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	RunIDKey     ctxKey = "run_id"
)

// WithRequestID returns a context carrying id for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRunID tags a context with the optimization run it belongs to.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs the duration of an operation when the returned func is deferred.
// Usage: defer obs.Time(ctx, "list_reports")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)
	runID := RunID(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		OperationDuration.WithLabelValues(name, outcome(errp)).Observe(dur.Seconds())

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s run_id=%s op=%s dur=%dms err=%v", reqID, runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s run_id=%s op=%s dur=%dms", reqID, runID, name, dur.Milliseconds())
	}
}

func outcome(errp *error) string {
	if errp != nil && *errp != nil {
		return "error"
	}
	return "ok"
}
