package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-cheatsheets"
	"github.com/alnah/go-cheatsheets/internal/config"
	"github.com/alnah/go-cheatsheets/internal/dateutil"
	"github.com/alnah/go-cheatsheets/internal/fileutil"
	"github.com/alnah/go-cheatsheets/internal/logfields"
	"github.com/alnah/go-cheatsheets/internal/metrics"
)

// Sentinel errors for CLI operations.
var (
	ErrWritePage          = errors.New("failed to write page")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrUnsafeClean        = errors.New("refusing to clean output directory")
	ErrBuildFailed        = errors.New("build failed")
)

// updatedFormat renders the footer's build date.
const updatedFormat = "auto:long"

// buildSettings is the resolved input of one build: config layers merged
// with flags.
type buildSettings struct {
	cfg       *config.Config
	inputDir  string
	outputDir string
	workers   int
	timeout   time.Duration
	noStyle   bool
	inlineCSS bool
	quiet     bool
	verbose   bool
}

// resolveSettings merges defaults, the config file, .env, CHEATSHEETS_*
// variables and flags, in that order.
func resolveSettings(flags *buildFlags, positional []string, env *Environment) (*buildSettings, error) {
	if err := validateWorkers(flags.workers); err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig(env.Getenv)

	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if len(positional) > 0 {
		cfg.Input.Dir = positional[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return nil, err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	return &buildSettings{
		cfg:       cfg,
		inputDir:  cfg.Input.Dir,
		outputDir: cfg.Output.Dir,
		workers:   workers,
		timeout:   timeout,
		noStyle:   flags.assets.noStyle,
		inlineCSS: flags.assets.inlineCSS,
		quiet:     flags.common.quiet,
		verbose:   flags.common.verbose,
	}, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.clean {
		cfg.Output.Clean = true
	}
	if flags.pdf {
		cfg.PDF.Enabled = true
	}
	if flags.site.title != "" {
		cfg.Site.Title = flags.site.title
	}
	if flags.site.basePath != "" {
		cfg.Site.BasePath = flags.site.basePath
	}
	if flags.site.dateFormat != "" {
		cfg.Site.DateFormat = flags.site.dateFormat
	}
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.TemplateSet = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// resolveTimeout picks the PDF timeout: flag, then env, then config.
func resolveTimeout(flagValue string, envValue time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, d)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return cfg.PDFTimeout()
}

// validateWorkers rejects negative worker counts; 0 means auto.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > cheatsheets.MaxPoolSize {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkerCount, n, cheatsheets.MaxPoolSize)
	}
	return nil
}

// rendererOptions translates settings into renderer options. All renderers
// of one build share buildID so stylesheet links agree across pages.
func rendererOptions(s *buildSettings, buildID, updated string, logger *slog.Logger, rec metrics.Recorder) []cheatsheets.Option {
	cfg := s.cfg
	opts := []cheatsheets.Option{
		cheatsheets.WithSite(cheatsheets.SiteInfo{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			Author:      cfg.Site.Author,
			Language:    cfg.Site.Language,
			BasePath:    cfg.Site.BasePath,
		}),
		cheatsheets.WithTimeout(s.timeout),
		cheatsheets.WithBuildID(buildID),
		cheatsheets.WithUpdated(updated),
		cheatsheets.WithInlineCSS(s.inlineCSS),
		cheatsheets.WithLogger(logger),
		cheatsheets.WithRecorder(rec),
	}
	if s.noStyle {
		opts = append(opts, cheatsheets.WithNoStyle())
	} else if cfg.Style != "" {
		opts = append(opts, cheatsheets.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, cheatsheets.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.TemplateSet != "" {
		opts = append(opts, cheatsheets.WithTemplateSetName(cfg.Assets.TemplateSet))
	}
	return opts
}

// PageJob is one sheet to render.
type PageJob struct {
	Doc        cheatsheets.Document
	OutputPath string
}

// PageOutcome holds the result of a single sheet.
type PageOutcome struct {
	Slug       string
	OutputPath string
	PDFPath    string
	Err        error
	Duration   time.Duration
}

// buildReport summarizes one build.
type buildReport struct {
	BuildID  string
	Index    string
	Pages    []PageOutcome
	Duration time.Duration
}

// siteBuilder renders a content directory into an output directory.
type siteBuilder struct {
	settings *buildSettings
	env      *Environment
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Build loads the documents and writes every page. Failed sheets are
// reported in the result; the returned error is set when any page failed.
func (b *siteBuilder) Build(ctx context.Context) (report *buildReport, err error) {
	start := time.Now()
	s := b.settings
	report = &buildReport{BuildID: uuid.NewString()}

	defer func() {
		report.Duration = time.Since(start)
		b.recorder.ObserveBuildDuration(report.Duration)
		switch {
		case err == nil:
			b.recorder.IncBuildOutcome(metrics.BuildSuccess)
		case errors.Is(err, context.Canceled):
			b.recorder.IncBuildOutcome(metrics.BuildCanceled)
		default:
			b.recorder.IncBuildOutcome(metrics.BuildFailed)
		}
	}()

	docs, err := cheatsheets.LoadDir(ctx, s.inputDir, cheatsheets.LoadOptions{
		DateFormat: s.cfg.Site.DateFormat,
		BasePath:   s.cfg.Site.BasePath,
		Logger:     b.logger,
	})
	if err != nil {
		return report, err
	}
	b.recorder.SetDocuments(len(docs))

	if s.cfg.Output.Clean {
		if err := cleanOutputDir(s.outputDir, s.inputDir); err != nil {
			return report, err
		}
	}

	updated, err := dateutil.ResolveDate(updatedFormat, b.env.Now())
	if err != nil {
		return report, err
	}

	opts := rendererOptions(s, report.BuildID, updated, b.logger, b.recorder)
	pool := cheatsheets.NewRendererPool(cheatsheets.ResolvePoolSize(s.workers), opts...)
	defer func() { _ = pool.Close() }()

	// The first renderer surfaces style and template errors before any
	// sheet is rendered.
	r, err := pool.Acquire()
	if err != nil {
		return report, err
	}
	report.Index, err = b.writeIndex(ctx, r, docs)
	pool.Release(r)
	if err != nil {
		return report, err
	}

	jobs := make([]PageJob, len(docs))
	for i, doc := range docs {
		jobs[i] = PageJob{Doc: doc, OutputPath: filepath.Join(s.outputDir, doc.Slug, cheatsheets.IndexFile)}
	}
	report.Pages = b.renderBatch(ctx, pool, jobs)

	b.logger.Info("build finished",
		logfields.BuildID(report.BuildID),
		logfields.Pages(len(report.Pages)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))

	return report, firstPageError(report.Pages)
}

// writeIndex writes index.html and, unless CSS is inlined, style.css.
func (b *siteBuilder) writeIndex(ctx context.Context, r *cheatsheets.Renderer, docs []cheatsheets.Document) (string, error) {
	page, err := r.RenderIndex(ctx, docs)
	if err != nil {
		return "", err
	}
	path := filepath.Join(b.settings.outputDir, page.Path)
	if err := writePage(path, page.HTML); err != nil {
		return "", err
	}
	if !b.settings.inlineCSS && !b.settings.noStyle {
		css := filepath.Join(b.settings.outputDir, cheatsheets.StylesheetFile)
		if err := writePage(css, []byte(r.Stylesheet())); err != nil {
			return "", err
		}
	}
	return path, nil
}

// renderBatch processes jobs concurrently using the renderer pool.
func (b *siteBuilder) renderBatch(ctx context.Context, pool *cheatsheets.RendererPool, jobs []PageJob) []PageOutcome {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))
	results := make([]PageOutcome, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire()
			if err != nil {
				for idx := range queue {
					results[idx] = PageOutcome{Slug: jobs[idx].Doc.Slug, Err: err}
				}
				return
			}
			defer pool.Release(r)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = PageOutcome{Slug: jobs[idx].Doc.Slug, Err: ctx.Err()}
					continue
				}
				results[idx] = b.renderOne(ctx, r, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderOne writes one sheet page and its optional PDF.
func (b *siteBuilder) renderOne(ctx context.Context, r *cheatsheets.Renderer, job PageJob) PageOutcome {
	start := time.Now()
	out := PageOutcome{Slug: job.Doc.Slug, OutputPath: job.OutputPath}

	page, err := r.RenderSheet(ctx, job.Doc, cheatsheets.NavState{})
	if err == nil {
		err = writePage(job.OutputPath, page.HTML)
	}
	if err == nil && b.settings.cfg.PDF.Enabled {
		var pdf []byte
		pdf, err = r.RenderPDF(ctx, page)
		if err == nil {
			out.PDFPath = filepath.Join(filepath.Dir(job.OutputPath), job.Doc.Slug+".pdf")
			err = writePage(out.PDFPath, pdf)
		}
	}

	out.Err = err
	out.Duration = time.Since(start)
	return out
}

// writePage writes data atomically so serve never exposes a partial page.
func writePage(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWritePage, path, err)
	}
	return nil
}

// cleanOutputDir removes outputDir. The working directory, the filesystem
// root and any directory holding the content are refused.
func cleanOutputDir(outputDir, inputDir string) error {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeClean, err)
	}
	in, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeClean, err)
	}
	wd, _ := os.Getwd()

	if out == filepath.Dir(out) || out == wd {
		return fmt.Errorf("%w: %s", ErrUnsafeClean, outputDir)
	}
	if rel, err := filepath.Rel(out, in); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s contains the content directory", ErrUnsafeClean, outputDir)
	}

	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	return nil
}

// firstPageError wraps the first failed page with the failure count.
func firstPageError(pages []PageOutcome) error {
	failed := 0
	var first error
	for _, p := range pages {
		if p.Err != nil {
			failed++
			if first == nil {
				first = fmt.Errorf("%s: %w", p.Slug, p.Err)
			}
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d page(s) failed: %w", ErrBuildFailed, failed, first)
}

// printReport outputs build results using the provided writers.
func printReport(report *buildReport, quiet, verbose bool, env *Environment) {
	if report == nil {
		return
	}

	summary := struct{ ok, failed int }{}
	for _, p := range report.Pages {
		if p.Err != nil {
			summary.failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", p.Slug, p.Err)
			continue
		}
		summary.ok++

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", p.Slug, p.OutputPath, p.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", p.OutputPath)
		}
		if p.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", p.PDFPath)
		}
	}

	if quiet {
		return
	}
	if report.Index != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", report.Index)
	}
	if len(report.Pages) > 0 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.ok, summary.failed)
	}
}

// runBuild parses flags, builds the site and prints the report.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	s, err := resolveSettings(flags, positional, env)
	if err != nil {
		return err
	}

	b := &siteBuilder{
		settings: s,
		env:      env,
		logger:   newLogger(env.Stderr, s.quiet, s.verbose),
		recorder: metrics.NoopRecorder{},
	}
	report, err := b.Build(ctx)
	printReport(report, s.quiet, s.verbose, env)
	return err
}
