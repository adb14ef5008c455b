package async

import (
	"context"
	"fmt"
)

// Future is the read side of a one-shot computation scheduled on a Pool.
// It resolves exactly once, to either a value or an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Wait blocks until the future resolves or the context is done. A
// context error only detaches the waiter; the underlying task keeps
// running to completion.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done exposes the resolution signal for select loops.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Run schedules fn on the pool and returns its future. If the pool has
// shut down the future resolves immediately with ErrPoolClosed. A panic
// inside fn resolves the future with an internal error instead of
// leaving waiters hanging.
func Run[T any](pool *Pool, fn func() (T, error)) *Future[T] {
	future := newFuture[T]()
	err := pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				future.complete(zero, panicError(r))
				panic(r)
			}
		}()
		future.complete(fn())
	})
	if err != nil {
		var zero T
		future.complete(zero, err)
	}
	return future
}

func panicError(r any) error {
	return fmt.Errorf("task panic: %v", r)
}
