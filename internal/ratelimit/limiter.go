// Package ratelimit gates outbound requests to a public lookup API with a
// token bucket and randomised spacing.
package ratelimit

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// DefaultJitter is the fraction by which a computed wait is randomly
// stretched or shortened.
const DefaultJitter = 0.2

// Limiter is a token bucket whose waits carry random jitter.
type Limiter struct {
	bucket *rate.Limiter
	jitter float64
}

// New returns a limiter allowing rps requests per second with the given burst.
func New(rps float64, burst int) *Limiter {
	return NewWithJitter(rps, burst, DefaultJitter)
}

// NewWithJitter is New with an explicit jitter fraction in [0, 1).
func NewWithJitter(rps float64, burst int, jitter float64) *Limiter {
	if jitter < 0 || jitter >= 1 {
		jitter = DefaultJitter
	}
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(rps), burst), jitter: jitter}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := l.bucket.Reserve()
	if !res.OK() {
		return ctx.Err()
	}

	delay := l.spread(res.Delay())
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *Limiter) spread(d time.Duration) time.Duration {
	if d <= 0 || l.jitter == 0 {
		return d
	}
	offset := float64(d) * l.jitter * (rand.Float64()*2 - 1) //nolint:gosec // jitter only
	return max(0, d+time.Duration(offset))
}
