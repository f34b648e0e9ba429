package materializer

import (
	"context"

	"golang.org/x/time/rate"
)

// copyLimiter paces file copies. The zero value never blocks.
type copyLimiter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(filesPerSecond float64) copyLimiter {
	if filesPerSecond <= 0 {
		return copyLimiter{}
	}
	return copyLimiter{limiter: rate.NewLimiter(rate.Limit(filesPerSecond), 1)}
}

func (l copyLimiter) wait(ctx context.Context) error {
	if l.limiter == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}
