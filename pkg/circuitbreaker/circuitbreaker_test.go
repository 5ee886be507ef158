package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var errUnavailable = errors.New("store unavailable")

func failing(context.Context) error { return errUnavailable }

func succeeding(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cb := newCircuitBreaker(&Config{FailureThreshold: 2, RecoveryTimeout: time.Minute, SuccessThreshold: 1}, clock.Now)
	ctx := context.Background()

	assert.ErrorIs(t, cb.Execute(ctx, failing), errUnavailable)
	assert.Equal(t, Closed, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, failing), errUnavailable)
	assert.Equal(t, Open, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cb := newCircuitBreaker(&Config{FailureThreshold: 1, RecoveryTimeout: time.Minute, SuccessThreshold: 2}, clock.Now)
	ctx := context.Background()

	_ = cb.Execute(ctx, failing)
	assert.Equal(t, Open, cb.State())

	clock.Advance(time.Minute + time.Second)

	assert.NoError(t, cb.Execute(ctx, succeeding))
	assert.Equal(t, HalfOpen, cb.State())

	assert.NoError(t, cb.Execute(ctx, succeeding))
	assert.Equal(t, Closed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cb := newCircuitBreaker(&Config{FailureThreshold: 1, RecoveryTimeout: time.Minute, SuccessThreshold: 1}, clock.Now)
	ctx := context.Background()

	_ = cb.Execute(ctx, failing)
	clock.Advance(2 * time.Minute)

	_ = cb.Execute(ctx, failing)
	assert.Equal(t, Open, cb.State())
	assert.Equal(t, clock.now.Add(time.Minute), cb.Snapshot().NextAttempt)
}

func TestCircuitBreaker_IgnoresCallerCancellation(t *testing.T) {
	cb := newCircuitBreaker(&Config{FailureThreshold: 1, RecoveryTimeout: time.Minute, SuccessThreshold: 1}, time.Now)

	err := cb.Execute(context.Background(), func(context.Context) error { return context.Canceled })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Closed, cb.State())
	assert.Equal(t, 0, cb.Snapshot().FailureCount)
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := newCircuitBreaker(&Config{FailureThreshold: 1, RecoveryTimeout: time.Hour, SuccessThreshold: 1}, time.Now)

	_ = cb.Execute(context.Background(), failing)
	assert.Equal(t, Open, cb.State())

	cb.Reset()
	assert.Equal(t, Closed, cb.State())
	assert.Equal(t, "closed", cb.State().String())
}

func TestCircuitBreaker_ReportsTransitions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var seen []string
	cb := newCircuitBreaker(&Config{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Minute,
		SuccessThreshold: 1,
		OnStateChange: func(from, to CircuitState) {
			seen = append(seen, from.String()+"->"+to.String())
		},
	}, clock.Now)
	ctx := context.Background()

	_ = cb.Execute(ctx, failing)
	assert.ErrorIs(t, cb.Execute(ctx, succeeding), ErrCircuitOpen)

	clock.Advance(time.Minute)
	assert.NoError(t, cb.Execute(ctx, succeeding))

	assert.Equal(t, []string{"closed->open", "open->half_open", "half_open->closed"}, seen)
}

func TestNewCircuitBreaker_FillsZeroFields(t *testing.T) {
	cb := newCircuitBreaker(&Config{FailureThreshold: 2}, time.Now)

	assert.Equal(t, 2, cb.config.FailureThreshold)
	assert.Equal(t, time.Minute, cb.config.RecoveryTimeout)
	assert.Equal(t, 3, cb.config.SuccessThreshold)
	assert.NotNil(t, cb.config.IsFailure)
}
