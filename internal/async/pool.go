package async

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrPoolClosed is returned by Submit once shutdown has begun.
var ErrPoolClosed = errors.New("worker pool closed")

// Pool is a fixed-size worker pool owned by a single service. Submitted
// tasks run on one of the workers; after Shutdown no new tasks are
// accepted but queued and in-flight tasks are drained to completion.
type Pool struct {
	name   string
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *zap.Logger
}

// NewPool starts workers goroutines consuming a queue of queueSize
// pending tasks.
func NewPool(name string, workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &Pool{
		name:   name,
		tasks:  make(chan func(), queueSize),
		logger: logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run executes a single task, recovering panics so one bad task cannot
// kill the worker.
func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("task panic recovered",
					zap.String("pool", p.name),
					zap.Any("panic", r))
			}
		}
	}()
	task()
}

// Submit enqueues a task, blocking while the queue is full. It fails
// with ErrPoolClosed once shutdown has begun.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// Shutdown stops intake and waits for queued and in-flight tasks to
// finish. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.tasks)
	p.wg.Wait()
}
