package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags ctx with the id of the current invocation.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// RunID returns the invocation id stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time starts timing op and returns a function that logs its duration and,
// when errp points at a non-nil error, the failure.
//
//	defer obs.Time(ctx, log, "feed.Load")(&err)
func Time(ctx context.Context, log *zap.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("run_id", RunID(ctx)),
			zap.String("op", name),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			log.Warn("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		log.Debug("op done", fields...)
	}
}
