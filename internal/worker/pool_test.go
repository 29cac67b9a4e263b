package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/worker"
)

func TestFanOut_PreservesInputOrder(t *testing.T) {
	pool := worker.NewPool(4)
	defer pool.StopAndWait()

	inputs := []int{30, 10, 20, 0}
	out, err := worker.FanOut(context.Background(), pool, inputs, func(_ context.Context, ms int) (int, error) {
		// later inputs finish first
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return ms * 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{60, 20, 40, 0}, out)
}

func TestFanOut_FirstErrorFails(t *testing.T) {
	pool := worker.NewPool(2)
	defer pool.StopAndWait()

	boom := errors.New("boom")
	out, err := worker.FanOut(context.Background(), pool, []string{"a", "b", "c"}, func(_ context.Context, s string) (string, error) {
		if s == "b" {
			return "", boom
		}
		return s, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestFanOut_FailureCancelsSiblings(t *testing.T) {
	pool := worker.NewPool(2)
	defer pool.StopAndWait()

	boom := errors.New("boom")
	started := make(chan struct{})
	out, err := worker.FanOut(context.Background(), pool, []string{"slow", "fail"}, func(ctx context.Context, s string) (string, error) {
		if s == "fail" {
			<-started
			return "", boom
		}
		close(started)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "", errors.New("sibling context was not cancelled")
		}
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestFanOut_FailureSkipsQueuedTasks(t *testing.T) {
	pool := worker.NewPool(1)
	defer pool.StopAndWait()

	var calls atomic.Int32
	boom := errors.New("boom")
	_, err := worker.FanOut(context.Background(), pool, []string{"a", "b", "c"}, func(_ context.Context, s string) (string, error) {
		calls.Add(1)
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFanOut_Empty(t *testing.T) {
	pool := worker.NewPool(0)
	defer pool.StopAndWait()

	out, err := worker.FanOut(context.Background(), pool, nil, func(_ context.Context, s string) (string, error) {
		t.Fatal("must not be called")
		return s, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}
