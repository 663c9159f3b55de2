package main

// Notes:
// - runServe blocks until its context ends; only the early exits are tested.
//   The handler, output dir and listener it wires are tested one by one.

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-cheatsheets/internal/config"
	"github.com/alnah/go-cheatsheets/internal/metrics"
	"github.com/alnah/go-cheatsheets/internal/watch"
)

func writeOutput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for rel, data := range map[string]string{
		"index.html":    "<h1>home</h1>",
		"go/index.html": "<h1>go</h1>",
	} {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// ---------------------------------------------------------------------------
// TestNewServeMux - Static files and metrics
// ---------------------------------------------------------------------------

func TestNewServeMux(t *testing.T) {
	t.Parallel()

	dir := writeOutput(t)

	t.Run("root", func(t *testing.T) {
		t.Parallel()

		mux := newServeMux(dir, "", nil)
		if rec := get(t, mux, "/go/"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<h1>go</h1>") {
			t.Errorf("GET /go/ = %d %q", rec.Code, rec.Body)
		}
		if rec := get(t, mux, "/metrics"); rec.Code != http.StatusNotFound {
			t.Errorf("GET /metrics = %d, want 404 without a registry", rec.Code)
		}
	})

	t.Run("base path", func(t *testing.T) {
		t.Parallel()

		mux := newServeMux(dir, "/sheets", nil)
		if rec := get(t, mux, "/sheets/go/"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<h1>go</h1>") {
			t.Errorf("GET /sheets/go/ = %d %q", rec.Code, rec.Body)
		}
		if rec := get(t, mux, "/sheets/"); !strings.Contains(rec.Body.String(), "<h1>home</h1>") {
			t.Errorf("GET /sheets/ = %d %q", rec.Code, rec.Body)
		}

		rec := get(t, mux, "/")
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/sheets/" {
			t.Errorf("GET / = %d Location=%q, want redirect to /sheets/", rec.Code, rec.Header().Get("Location"))
		}
		if rec := get(t, mux, "/go/"); rec.Code != http.StatusNotFound {
			t.Errorf("GET /go/ = %d, want 404 outside the base path", rec.Code)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		t.Parallel()

		reg := prom.NewRegistry()
		metrics.NewPrometheusRecorder(reg).IncBuildOutcome(metrics.BuildSuccess)

		rec := get(t, newServeMux(dir, "", reg), "/metrics")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /metrics = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "cheatsheets_build_outcomes_total") {
			t.Errorf("metrics body missing build outcomes:\n%s", rec.Body)
		}
	})
}

func TestNewServeMux_LiveServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(writeOutput(t), "/sheets", nil))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.Request.URL.Path != "/sheets/" || !strings.Contains(string(body), "<h1>home</h1>") {
		t.Errorf("followed redirect to %q, body %q", resp.Request.URL.Path, body)
	}
}

// ---------------------------------------------------------------------------
// TestServeOutputDir / TestListen
// ---------------------------------------------------------------------------

func TestServeOutputDir(t *testing.T) {
	t.Parallel()

	t.Run("default output becomes a temp dir", func(t *testing.T) {
		t.Parallel()

		dir, cleanup, err := serveOutputDir(&serveFlags{}, newTestEnv(nil).Environment, config.DefaultConfig())
		if err != nil {
			t.Fatalf("serveOutputDir() error = %v", err)
		}
		if dir == "public" || !strings.Contains(filepath.Base(dir), "cheatsheets-serve-") {
			t.Errorf("dir = %q, want a temp dir", dir)
		}
		cleanup()
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("cleanup should remove the temp dir")
		}
	})

	t.Run("flag output is kept", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.Dir = "dist"
		flags := &serveFlags{build: buildFlags{output: "dist"}}
		dir, cleanup, err := serveOutputDir(flags, newTestEnv(nil).Environment, cfg)
		if err != nil {
			t.Fatal(err)
		}
		defer cleanup()
		if dir != "dist" {
			t.Errorf("dir = %q, want dist", dir)
		}
	})

	t.Run("env output is kept", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(map[string]string{"CHEATSHEETS_OUTPUT_DIR": "public"})
		dir, cleanup, err := serveOutputDir(&serveFlags{}, env.Environment, config.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		defer cleanup()
		if dir != "public" {
			t.Errorf("dir = %q, want public", dir)
		}
	})
}

func TestListen_AddressInUse(t *testing.T) {
	t.Parallel()

	ln, err := listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen() error = %v", err)
	}
	defer func() { _ = ln.Close() }()

	_, err = listen(ln.Addr().String())
	if !errors.Is(err, ErrAddressInUse) {
		t.Fatalf("listen() error = %v, want ErrAddressInUse", err)
	}
	if serveHint(err) == "" {
		t.Error("serveHint() should suggest another address")
	}
	if exitCodeFor(err) != ExitIO {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestRunServe - Early exits
// ---------------------------------------------------------------------------

func TestRunServe(t *testing.T) {
	t.Parallel()

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		err := runServe(context.Background(), []string{"--nope"}, newTestEnv(nil).Environment)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("initial build fails", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing")
		err := runServe(context.Background(), []string{"--addr", "127.0.0.1:0", missing}, newTestEnv(nil).Environment)
		if exitCodeFor(err) != ExitIO {
			t.Errorf("error = %v, want an I/O failure", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		out := t.TempDir()
		err := runServe(ctx, []string{"-o", out, "--addr", "127.0.0.1:0", sampleContent(t)}, newTestEnv(nil).Environment)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

// A rebuild still writing when serve shuts down must finish before the
// temporary output dir is removed.
func TestStartWatcher_StopWaitsForRebuild(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var once atomic.Bool

	rebuild := func(context.Context) error {
		if once.Swap(true) {
			return nil
		}
		close(started)
		<-release
		err := os.WriteFile(filepath.Join(out, "index.html"), []byte("rebuilt"), 0o644)
		finished.Store(true)
		return err
	}
	w, err := watch.New(in, rebuild, watch.WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("watch.New() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	stop := startWatcher(context.Background(), w)
	if err := os.WriteFile(filepath.Join(in, "go.md"), []byte("# Go\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild did not start")
	}

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("stop returned while a rebuild was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not return after the rebuild finished")
	}
	if !finished.Load() {
		t.Error("stop returned before the rebuild finished writing")
	}
}
