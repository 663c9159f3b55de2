package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-cheatsheets/internal/config"
	"github.com/alnah/go-cheatsheets/internal/hints"
	"github.com/alnah/go-cheatsheets/internal/logfields"
	"github.com/alnah/go-cheatsheets/internal/metrics"
	"github.com/alnah/go-cheatsheets/internal/watch"
)

// ErrAddressInUse is returned when the listen address is taken.
var ErrAddressInUse = errors.New("address already in use")

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// newServeMux serves outputDir under basePath and, when metricsReg is set,
// the Prometheus registry at /metrics.
func newServeMux(outputDir, basePath string, metricsReg *prom.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	files := http.FileServer(http.Dir(outputDir))
	base := strings.TrimSuffix(basePath, "/")
	if base == "" {
		mux.Handle("/", files)
	} else {
		mux.Handle(base+"/", http.StripPrefix(base, files))
		mux.Handle("/{$}", http.RedirectHandler(base+"/", http.StatusFound))
	}

	if metricsReg != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(metricsReg))
	}
	return mux
}

// serveOutputDir returns the directory to serve and a cleanup func. An output
// directory left at its default becomes a temp dir.
func serveOutputDir(flags *serveFlags, env *Environment, cfg *config.Config) (string, func(), error) {
	explicit := flags.build.output != "" ||
		env.Getenv("CHEATSHEETS_OUTPUT_DIR") != "" ||
		cfg.Output.Dir != config.DefaultConfig().Output.Dir
	if explicit {
		return cfg.Output.Dir, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "cheatsheets-serve-*")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// listen opens addr, mapping EADDRINUSE to ErrAddressInUse.
func listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %s", ErrAddressInUse, addr)
		}
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return ln, nil
}

// runServe builds the site, serves it and rebuilds on content changes until
// ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	s, err := resolveSettings(&flags.build, positional, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		s.cfg.Serve.Addr = flags.addr
	}
	if flags.metrics {
		s.cfg.Serve.Metrics = true
	}
	if s.cfg.Serve.Addr == "" {
		s.cfg.Serve.Addr = config.DefaultAddr
	}

	outputDir, cleanup, err := serveOutputDir(flags, env, s.cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	s.outputDir = outputDir

	logger := newLogger(env.Stderr, s.quiet, s.verbose)

	var reg *prom.Registry
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if s.cfg.Serve.Metrics {
		reg = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	b := &siteBuilder{settings: s, env: env, logger: logger, recorder: rec}
	report, err := b.Build(ctx)
	printReport(report, s.quiet, s.verbose, env)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) error {
		report, err := b.Build(ctx)
		if report != nil && !s.quiet {
			fmt.Fprintf(env.Stdout, "Rebuilt %d page(s) in %v\n", len(report.Pages), report.Duration.Round(time.Millisecond))
		}
		return err
	}
	w, err := watch.New(s.inputDir, rebuild, watch.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ln, err := listen(s.cfg.Serve.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           newServeMux(outputDir, s.cfg.Site.BasePath, reg),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	stopWatcher := startWatcher(ctx, w)
	defer stopWatcher()

	if !s.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s at http://%s%s/\n", outputDir, ln.Addr(), strings.TrimSuffix(s.cfg.Site.BasePath, "/"))
	}
	logger.Info("serving", logfields.Addr(ln.Addr().String()), logfields.Path(outputDir))

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startWatcher runs w in the background. The returned stop cancels it and
// blocks until any in-flight rebuild has returned, so the output dir can be
// removed safely afterwards.
func startWatcher(ctx context.Context, w *watch.Watcher) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// serveHint returns a hint for serve-specific failures.
func serveHint(err error) string {
	if errors.Is(err, ErrAddressInUse) {
		return hints.ForAddressInUse()
	}
	return ""
}
