package cheatsheets

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

func testPoolOptions() []Option {
	return []Option{withPDFConverter(&mockPDFConverter{})}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit takes priority", workers: 4, want: 4},
		{name: "explicit=1 for sequential", workers: 1, want: 1},
		{name: "explicit can exceed max", workers: 20, want: 20},
		{name: "zero uses auto calculation", workers: 0, want: min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{name: "negative uses auto calculation", workers: -3, want: min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolvePoolSize_Bounds(t *testing.T) {
	t.Parallel()

	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}
}

func TestNewRendererPool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{n: 3, want: 3},
		{n: 0, want: 1},
		{n: -1, want: 1},
	}
	for _, tt := range tests {
		p := NewRendererPool(tt.n, testPoolOptions()...)
		if p.Size() != tt.want {
			t.Errorf("NewRendererPool(%d).Size() = %d, want %d", tt.n, p.Size(), tt.want)
		}
		_ = p.Close()
	}
}

func TestRendererPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	p := NewRendererPool(2, testPoolOptions()...)
	defer p.Close()

	a, err := p.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	b, err := p.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if a == b {
		t.Error("pool returned the same renderer twice while both in use")
	}

	p.Release(a)
	c, err := p.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c != a {
		t.Error("released renderer should be reused")
	}
	p.Release(b)
	p.Release(c)
}

func TestRendererPool_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	p := NewRendererPool(1, testPoolOptions()...)
	defer p.Close()

	r, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}

	acquired := make(chan *Renderer)
	go func() {
		got, _ := p.Acquire()
		acquired <- got
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire() should block while the pool is exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release(r)
	select {
	case got := <-acquired:
		if got != r {
			t.Error("blocked Acquire() should receive the released renderer")
		}
		p.Release(got)
	case <-time.After(time.Second):
		t.Fatal("Acquire() did not unblock after Release()")
	}
}

func TestRendererPool_CreateError(t *testing.T) {
	t.Parallel()

	p := NewRendererPool(1, WithStyle("missing-style"))
	defer p.Close()

	if _, err := p.Acquire(); err == nil {
		t.Fatal("Acquire() expected error for invalid options")
	}
	// A failed creation frees its slot.
	if _, err := p.Acquire(); err == nil {
		t.Fatal("second Acquire() should retry creation and fail again")
	}
}

// A failed creation hands its slot to the next blocked caller instead of
// leaving it waiting forever.
func TestRendererPool_CreateErrorWakesWaiters(t *testing.T) {
	t.Parallel()

	p := NewRendererPool(1, WithStyle("missing-style"))
	defer p.Close()

	const callers = 6
	errs := make(chan error, callers)
	for range callers {
		go func() {
			_, err := p.Acquire()
			errs <- err
		}()
	}

	for range callers {
		select {
		case err := <-errs:
			if !errors.Is(err, ErrStyleNotFound) {
				t.Errorf("Acquire() error = %v, want ErrStyleNotFound", err)
			}
		case <-time.After(3 * time.Second):
			t.Fatal("Acquire() hung after a failed creation")
		}
	}
}

func TestRendererPool_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	p := NewRendererPool(3, testPoolOptions()...)
	defer p.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := p.Acquire()
			if err != nil {
				t.Error(err)
				return
			}
			time.Sleep(time.Millisecond)
			p.Release(r)
		}()
	}
	wg.Wait()

	p.mu.Lock()
	created := len(p.renderers)
	p.mu.Unlock()
	if created > 3 {
		t.Errorf("created %d renderers, want at most 3", created)
	}
}

func TestRendererPool_Close(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	p := NewRendererPool(1, withPDFConverter(pdf))

	r, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	p.Release(r)

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pdf.closed {
		t.Error("Close() should close every renderer")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	// Release after close is a no-op.
	p.Release(r)
}

func TestRendererPool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	p := NewRendererPool(1, testPoolOptions()...)
	r, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}

	blocked := make(chan error, 1)
	go func() {
		_, err := p.Acquire()
		blocked <- err
	}()

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case err := <-blocked:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("blocked Acquire() error = %v, want ErrPoolClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Close() did not wake a blocked Acquire()")
	}

	if _, err := p.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close() error = %v, want ErrPoolClosed", err)
	}
	p.Release(r)
}
