package cheatsheets

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool manages Renderer instances for parallel builds.
// Each renderer owns its browser, so PDF exports run in parallel.
// Renderers are created lazily on first acquire to avoid startup delay.
//
// Every slot is in exactly one place: free in slots, idle in idle, or held
// by a caller. Sends on either channel therefore never block.
type RendererPool struct {
	size      int
	opts      []Option
	renderers []*Renderer
	idle      chan *Renderer
	slots     chan struct{}
	done      chan struct{}
	mu        sync.Mutex
	closed    bool
}

// NewRendererPool creates a pool with capacity for n renderers, each built
// with opts.
func NewRendererPool(n int, opts ...Option) *RendererPool {
	if n < 1 {
		n = 1
	}

	slots := make(chan struct{}, n)
	for range n {
		slots <- struct{}{}
	}
	return &RendererPool{
		size:      n,
		opts:      opts,
		renderers: make([]*Renderer, 0, n),
		idle:      make(chan *Renderer, n),
		slots:     slots,
		done:      make(chan struct{}),
	}
}

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks if all renderers are in use. Returns ErrPoolClosed once the pool
// is closed.
func (p *RendererPool) Acquire() (*Renderer, error) {
	if p.isClosed() {
		return nil, ErrPoolClosed
	}

	// Prefer an idle renderer over creating another one.
	select {
	case r := <-p.idle:
		return r, nil
	default:
	}

	select {
	case r := <-p.idle:
		return r, nil
	case <-p.slots:
		return p.create()
	case <-p.done:
		return nil, ErrPoolClosed
	}
}

// create builds a renderer for a claimed slot. On failure the slot is put
// back, so a blocked Acquire wakes up and tries again.
func (p *RendererPool) create() (*Renderer, error) {
	// Create outside the lock: template parsing is not free.
	r, err := NewRenderer(p.opts...)
	if err != nil {
		p.slots <- struct{}{}
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = r.Close()
		return nil, ErrPoolClosed
	}
	p.renderers = append(p.renderers, r)
	return r, nil
}

// Release returns a renderer to the pool. It is a no-op after Close.
func (p *RendererPool) Release(r *Renderer) {
	if p.isClosed() {
		return
	}
	p.idle <- r
}

// Close releases all browser resources and wakes blocked Acquire calls.
// Returns an aggregated error if multiple renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *RendererPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return max(MinPoolSize, min(n, MaxPoolSize))
}
