package utils

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestGroupBasic ensures that all goroutines are waited upon and error reporting works correctly
func TestGroupBasic(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancel := NewGroup(context.Background())
	defer cancel(nil)

	group.Go(func(ctx context.Context) error {
		return nil
	})
	group.Go(func(ctx context.Context) error {
		return errors.New("an error occurred")
	})

	err := group.Wait()
	assert.NotNil(t, err)
	assert.Equal(t, "an error occurred", err.Error())
}

// A worker finishing cleanly must not cut the others short.
func TestGroupSuccessDoesNotCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancel := NewGroup(context.Background())
	defer cancel(nil)

	group.Go(func(ctx context.Context) error {
		return nil
	})
	group.Go(func(ctx context.Context) error {
		select {
		case <-time.After(20 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	assert.NoError(t, group.Wait())
	assert.NoError(t, group.Context().Err())
}

// TestGroupExternalContextCancel ensures that context cancellation works correctly when context is cancelled from
// outside the go-routines.
func TestGroupExternalContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancelCause := NewGroup(context.Background())

	group.Go(func(ctx context.Context) error {
		select {
		case <-time.After(200 * time.Millisecond): // Does not finish if context is cancelled
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	time.AfterFunc(1*time.Millisecond, func() {
		cancelCause(errors.New("custom cancellation message"))
	})

	err := group.Wait()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "custom cancellation message", context.Cause(group.Context()).Error())
}

// TestGroupInternalContextCancel ensures that a failing go-routine cancels the others.
func TestGroupInternalContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancel := NewGroup(context.Background())
	defer cancel(nil)

	group.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return context.Cause(ctx)
	})
	group.Go(func(ctx context.Context) error {
		return fmt.Errorf("internal go-routine error")
	})

	err := group.Wait()
	assert.NotNil(t, err)
	assert.Equal(t, "internal go-routine error", err.Error())
}

// TestGroupMultipleErrors ensures that only the first error is reported
func TestGroupMultipleErrors(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancel := NewGroup(context.Background())
	defer cancel(nil)

	group.Go(func(ctx context.Context) error {
		return errors.New("first error")
	})
	err := group.Wait()
	assert.Equal(t, "first error", err.Error())

	group.Go(func(ctx context.Context) error {
		return errors.New("second error")
	})
	err = group.Wait()
	assert.Equal(t, "first error", err.Error())
}

func TestGroupRecoversPanics(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancel := NewGroup(context.Background())
	defer cancel(nil)

	group.Go(func(ctx context.Context) error {
		panic("worker exploded")
	})

	err := group.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker exploded")
	assert.Error(t, group.Context().Err())
}

func TestGroupGoN(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	group, cancel := NewGroup(context.Background())
	defer cancel(nil)

	var seen [8]atomic.Bool
	group.GoN(len(seen), func(ctx context.Context, worker int) error {
		seen[worker].Store(true)
		return nil
	})
	require.NoError(t, group.Wait())
	for i := range seen {
		assert.True(t, seen[i].Load(), "worker %d", i)
	}
}
