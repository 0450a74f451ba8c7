package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{Attempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	var calls int
	err := retry(context.Background(), fastPolicy(3), "ping", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	var calls int
	err := retry(context.Background(), fastPolicy(4), "ping", func(context.Context) error {
		calls++
		return errors.New("dial tcp: i/o timeout")
	})
	assert.EqualError(t, err, "dial tcp: i/o timeout")
	assert.Equal(t, 4, calls)
}

func TestRetry_ServerErrorNotRetried(t *testing.T) {
	var calls int
	authErr := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	err := retry(context.Background(), fastPolicy(5), "ping", func(context.Context) error {
		calls++
		return authErr
	})
	assert.ErrorIs(t, err, authErr)
	assert.Equal(t, 1, calls)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	err := retry(ctx, RetryPolicy{Attempts: 10, InitialBackoff: time.Hour, MaxBackoff: time.Hour}, "ping", func(context.Context) error {
		calls++
		cancel()
		return errors.New("connection refused")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Defaults(t *testing.T) {
	p := RetryPolicy{}.withDefaults()
	assert.Equal(t, DefaultRetryPolicy(), p)

	p = RetryPolicy{Attempts: 2}.withDefaults()
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, 250*time.Millisecond, p.InitialBackoff)
}

func TestRetryPolicy_BackoffCapped(t *testing.T) {
	p := RetryPolicy{Attempts: 10, InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second}
	for attempt := 0; attempt < 70; attempt++ {
		d := p.backoff(attempt)
		assert.LessOrEqual(t, d, 1250*time.Millisecond, "attempt %d", attempt)
		assert.GreaterOrEqual(t, d, 75*time.Millisecond, "attempt %d", attempt)
	}
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(nil))
	assert.False(t, retryable(context.Canceled))
	assert.False(t, retryable(context.DeadlineExceeded))
	assert.False(t, retryable(&pgconn.PgError{Code: "3D000"}))
	assert.True(t, retryable(errors.New("connection reset by peer")))
}
