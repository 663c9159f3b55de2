package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-cheatsheets/internal/watch"
)

func TestShouldIgnore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"content/go.md", false},
		{"content/lang/rust.markdown", false},
		{"content/.go.md.swp", true},
		{"content/go.md.swp", true},
		{"content/go.md~", true},
		{"content/#go.md#", true},
		{"content/.DS_Store", true},
		{"content/Thumbs.db", true},
		{"content/.git", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, watch.ShouldIgnore(tt.path), tt.path)
	}
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	t.Parallel()

	deb := watch.NewDebouncer(20 * time.Millisecond)
	defer deb.Stop()

	for range 10 {
		deb.Trigger()
	}

	select {
	case <-deb.C():
	case <-time.After(2 * time.Second):
		t.Fatal("no signal after burst")
	}

	select {
	case <-deb.C():
		t.Fatal("burst produced more than one signal")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_StopCancelsSignal(t *testing.T) {
	t.Parallel()

	deb := watch.NewDebouncer(50 * time.Millisecond)
	deb.Trigger()
	deb.Stop()

	select {
	case <-deb.C():
		t.Fatal("signal after Stop")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRunWorker_NoOverlapAndOnePending(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reqs := make(chan struct{})
	release := make(chan struct{})
	var calls, active, maxActive atomic.Int32

	fn := func(context.Context) {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		calls.Add(1)
		<-release
		active.Add(-1)
	}

	done := make(chan struct{})
	go func() {
		watch.RunWorker(ctx, reqs, fn)
		close(done)
	}()

	reqs <- struct{}{}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Three requests while running collapse into one pending rebuild.
	reqs <- struct{}{}
	reqs <- struct{}{}
	reqs <- struct{}{}

	release <- struct{}{}
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	release <- struct{}{}

	assert.Never(t, func() bool { return calls.Load() > 2 }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, int32(1), maxActive.Load())

	close(reqs)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunWorker did not return after reqs closed")
	}
}

func TestRunWorker_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		watch.RunWorker(ctx, make(chan struct{}), func(context.Context) {})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunWorker did not return after cancel")
	}
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lang"), 0o750))

	var mu sync.Mutex
	rebuilds := 0
	rebuild := func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		rebuilds++
		return nil
	}
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return rebuilds
	}

	w, err := watch.New(dir, rebuild, watch.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lang", "go.md"), []byte("# Go\n"), 0o644))
	require.Eventually(t, func() bool { return count() >= 1 }, 3*time.Second, 10*time.Millisecond)

	before := count()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scratch.swp"), []byte("x"), 0o644))
	assert.Never(t, func() bool { return count() > before }, 200*time.Millisecond, 20*time.Millisecond)

	cancel()
	select {
	case err := <-runDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_RunWaitsForInFlightRebuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	var finished atomic.Bool
	rebuild := func(context.Context) error {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			finished.Store(true)
		}
		return nil
	}

	w, err := watch.New(dir, rebuild, watch.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.md"), []byte("# Go\n"), 0o644))
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild did not start")
	}

	cancel()
	select {
	case <-runDone:
		t.Fatal("Run returned while a rebuild was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-runDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the rebuild finished")
	}
	assert.True(t, finished.Load())
}

func TestWatcher_RunReturnsAfterClose(t *testing.T) {
	t.Parallel()

	w, err := watch.New(t.TempDir(), func(context.Context) error { return nil })
	require.NoError(t, err)

	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(context.Background()) }()

	require.NoError(t, w.Close())
	select {
	case err := <-runDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestNew_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := watch.New(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	require.Error(t, err)
}
