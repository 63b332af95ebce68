// Package pool runs tasks on a fixed number of goroutines.
package pool

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many submitted tasks run at once. Submitting to a saturated
// pool blocks the caller until a worker frees up.
type Pool struct {
	size int64
	sem  *semaphore.Weighted
	wg   sync.WaitGroup
}

// New returns a pool of size workers. size must be positive.
func New(size int) *Pool {
	if size <= 0 {
		panic("pool: size must be positive")
	}
	return &Pool{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return int(p.size)
}

// Submit runs task on a free worker, waiting for one if all are busy.
func (p *Pool) Submit(task func()) {
	// Acquire only fails when the context is done
	_ = p.SubmitContext(context.Background(), task)
}

// SubmitContext is like Submit but gives up when ctx is done before a worker frees up.
func (p *Pool) SubmitContext(ctx context.Context, task func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		task()
	}()
	return nil
}

// Wait blocks until every submitted task has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
