package world

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
)

// WorkerPool runs chunk tasks on a bounded set of goroutines. A panicking task
// is logged and does not take down the pool or other chunks.
type WorkerPool struct {
	pool     pond.Pool
	inflight sync.WaitGroup
	stopped  atomic.Bool
	log      *slog.Logger
}

// NewWorkerPool creates a pool running at most workers tasks at once.
func NewWorkerPool(workers int, log *slog.Logger) *WorkerPool {
	return &WorkerPool{
		pool: pond.NewPool(max(workers, 1)),
		log:  log,
	}
}

// Submit queues task. name identifies the task in logs. It returns false
// once the pool has been stopped.
func (p *WorkerPool) Submit(name string, task func()) bool {
	if p.stopped.Load() {
		return false
	}
	p.inflight.Add(1)
	err := p.pool.Go(func() {
		defer p.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("worker task panicked",
					"task", name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()
		task()
	})
	if err != nil {
		p.inflight.Done()
		return false
	}
	return true
}

// Wait blocks until every submitted task, including ones submitted while
// waiting, has finished.
func (p *WorkerPool) Wait() {
	p.inflight.Wait()
}

// Running returns the number of busy workers.
func (p *WorkerPool) Running() int64 {
	return p.pool.RunningWorkers()
}

// StopAndWait drains queued tasks and stops the pool. Later calls return
// immediately.
func (p *WorkerPool) StopAndWait() {
	if p.stopped.Swap(true) {
		return
	}
	p.pool.StopAndWait()
}
