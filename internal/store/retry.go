package store

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// RetryPolicy bounds how long a database source waits for the server to
// accept connections at startup.
type RetryPolicy struct {
	// Attempts is the total number of tries, including the first. Default: 5.
	Attempts int `yaml:"attempts" mapstructure:"attempts"`

	// InitialBackoff is the delay before the second try; it doubles on each
	// retry up to MaxBackoff. Defaults: 250ms and 5s.
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// DefaultRetryPolicy returns the startup connect policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, InitialBackoff: 250 * time.Millisecond, MaxBackoff: 5 * time.Second}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy()
	if p.Attempts <= 0 {
		p.Attempts = d.Attempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = d.InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = d.MaxBackoff
	}
	return p
}

// backoff returns the delay after the given zero-based attempt with ±25% jitter.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.MaxBackoff
	if attempt < 32 {
		d = p.InitialBackoff << attempt
	}
	if d <= 0 || d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	jitter := (rand.Float64()*2 - 1) * 0.25 * float64(d)
	return d + time.Duration(jitter)
}

// retryable reports whether err may clear up on its own. A server that
// answered with an error (bad password, missing database) will answer the
// same way again.
func retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pgErr *pgconn.PgError
	return !errors.As(err, &pgErr)
}

// retry runs fn until it succeeds, returns a non-retryable error, the policy
// runs out of attempts or ctx is done.
func retry(ctx context.Context, p RetryPolicy, op string, fn func(ctx context.Context) error) error {
	p = p.withDefaults()

	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) || attempt == p.Attempts-1 {
			return err
		}

		delay := p.backoff(attempt)
		zap.L().Warn("retrying store operation",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}
