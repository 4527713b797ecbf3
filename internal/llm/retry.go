package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry retries transient failures with capped exponential backoff.
// A rate-limit hint from the vendor replaces the computed wait.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		badReplies  int
		wait        = r.cfg.InitialWait
		attemptsMax = r.cfg.MaxAttempts
	)
	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			badReplies++
		}
		if attempt >= attemptsMax || !retryable(err, badReplies) {
			return nil, err
		}

		pause := jitter(wait)
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			pause = rl.RetryAfter
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
		wait = next(wait, r.cfg)
	}
}

func (r *retryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether another attempt can help. A malformed reply
// earns one more try; a rejected request or a truncated reply never does.
func retryable(err error, badReplies int) bool {
	if contextError(err) != nil {
		return false
	}
	var (
		maxTok *ErrMaxTokensExceeded
		reqErr *ErrRequest
	)
	if errors.As(err, &maxTok) || errors.As(err, &reqErr) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return badReplies <= 1
	}
	return true
}

func next(wait time.Duration, cfg RetryConfig) time.Duration {
	mult := cfg.Multiplier
	if mult < 1 {
		mult = 1
	}
	wait = time.Duration(float64(wait) * mult)
	if cfg.MaxWait > 0 && wait > cfg.MaxWait {
		wait = cfg.MaxWait
	}
	return wait
}

// jitter spreads d by up to a fifth either way.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	spread := int64(d) / 5
	if spread == 0 {
		return d
	}
	return d + time.Duration(rand.Int64N(2*spread+1)-spread)
}
