package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewPool("test", 2, 8, zap.NewNop())
	defer pool.Shutdown()

	var counter int64
	done := make(chan struct{})
	err := pool.Submit(func() {
		atomic.AddInt64(&counter, 1)
		close(done)
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	require.Equal(t, int64(1), atomic.LoadInt64(&counter))
}

func TestPoolShutdownDrainsQueuedTasks(t *testing.T) {
	pool := NewPool("test", 1, 16, zap.NewNop())

	var counter int64
	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
		}))
	}

	pool.Shutdown()
	require.Equal(t, int64(10), atomic.LoadInt64(&counter), "shutdown must wait for queued tasks")
}

func TestPoolRejectsAfterShutdown(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	pool.Shutdown()

	err := pool.Submit(func() {})
	require.ErrorIs(t, err, ErrPoolClosed)

	// second shutdown is a no-op
	pool.Shutdown()
}

func TestPoolSurvivesPanickingTask(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after a panicking task")
	}
}

func TestFutureResolvesValue(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	defer pool.Shutdown()

	future := Run(pool, func() (int, error) { return 7, nil })
	val, err := future.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, val)
}

func TestFutureResolvesError(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	defer pool.Shutdown()

	boom := errors.New("boom")
	future := Run(pool, func() (int, error) { return 0, boom })
	_, err := future.Wait(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestFutureWaitHonorsContext(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	defer pool.Shutdown()

	release := make(chan struct{})
	future := Run(pool, func() (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := future.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// the task keeps running and the future still resolves
	close(release)
	val, err := future.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, val)
}

func TestRunAfterShutdownResolvesImmediately(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	pool.Shutdown()

	future := Run(pool, func() (int, error) { return 1, nil })
	_, err := future.Wait(context.Background())
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestFutureResolvesOnPanic(t *testing.T) {
	pool := NewPool("test", 1, 4, zap.NewNop())
	defer pool.Shutdown()

	future := Run(pool, func() (int, error) { panic("kaboom") })
	_, err := future.Wait(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "kaboom")
}
