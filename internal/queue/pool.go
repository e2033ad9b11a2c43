package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueFull indicates the pool had no free worker and no queue slot left.
var ErrQueueFull = errors.New("queue: full")

// ErrShutdown indicates the pool no longer accepts work.
var ErrShutdown = errors.New("queue: shut down")

// Config controls pool capacity. Workers is the number of upstream calls
// allowed in flight at once; MaxQueue is how many accepted calls may wait
// for a worker. MaxQueue 0 admits a call only when a worker is idle.
type Config struct {
	Workers  int
	MaxQueue int
}

// Pool caps the number of concurrent upstream vendor calls made by the
// relay. Design and create operations are expensive on the vendor side, so
// excess load is rejected at admission instead of piling onto the vendor.
type Pool struct {
	mu     sync.Mutex
	closed bool
	jobs   chan job
	wg     sync.WaitGroup
}

type job struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// New starts a pool with cfg.Workers workers.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxQueue < 0 {
		cfg.MaxQueue = 0
	}

	p := &Pool{jobs: make(chan job, cfg.MaxQueue)}

	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Do runs fn on a pool worker and returns its error. Admission never
// blocks: when all workers are busy and the queue is full, Do fails fast
// with ErrQueueFull so the caller can shed load. If ctx is cancelled while
// the call waits or runs, Do returns ctx.Err(); fn receives the same
// context and is expected to abort with it.
func (p *Pool) Do(ctx context.Context, fn func(context.Context) error) error {
	j := job{ctx: ctx, fn: fn, result: make(chan error, 1)}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrShutdown
	}
	select {
	case p.jobs <- j:
		p.mu.Unlock()
	default:
		p.mu.Unlock()
		return ErrQueueFull
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops admission and waits for queued and in-flight calls to
// finish, or for ctx to expire. It is safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for j := range p.jobs {
		// a queued call whose caller already gave up must not reach the vendor
		if j.ctx.Err() != nil {
			j.result <- j.ctx.Err()
			continue
		}
		j.result <- j.fn(j.ctx)
	}
}
