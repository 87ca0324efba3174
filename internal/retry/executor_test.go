package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifyAll bool

func (c classifyAll) IsTransient(error) bool { return bool(c) }

type fixedStrategy struct{ attempts int }

func (s fixedStrategy) NextDelay(int) time.Duration { return time.Millisecond }
func (s fixedStrategy) MaxAttempts() int            { return s.attempts }

func newTestExecutor(transient bool, attempts int) *Executor {
	e := NewExecutor(classifyAll(transient), fixedStrategy{attempts: attempts})
	e.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return e
}

func TestExecutor_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := newTestExecutor(true, 3).Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecutor_RetriesTransientUntilSuccess(t *testing.T) {
	calls := 0
	var retried []int
	e := newTestExecutor(true, 3).WithOnRetry(func(attempt int, _ error, _ time.Duration) {
		retried = append(retried, attempt)
	})

	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{0, 1}, retried)
}

func TestExecutor_StopsAfterMaxAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("connection refused")
	err := newTestExecutor(true, 2).Execute(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "one try plus two retries")
}

func TestExecutor_FatalErrorNotRetried(t *testing.T) {
	calls := 0
	err := newTestExecutor(false, 5).Execute(context.Background(), func(context.Context) error {
		calls++
		return errors.New("password authentication failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecutor_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestExecutor(true, 5).Execute(ctx, func(context.Context) error {
		return errors.New("connection refused")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fixedStrategy{}) })
	assert.Panics(t, func() { NewExecutor(classifyAll(true), nil) })
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
