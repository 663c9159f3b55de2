package cheatsheets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-cheatsheets/internal/assets"
	"github.com/alnah/go-cheatsheets/internal/fileutil"
	"github.com/alnah/go-cheatsheets/internal/logfields"
	"github.com/alnah/go-cheatsheets/internal/metrics"
	"github.com/alnah/go-cheatsheets/internal/nav"
	"github.com/alnah/go-cheatsheets/internal/pipeline"
	"github.com/alnah/go-cheatsheets/internal/site"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.ContentTransformer = (*pipeline.RuleTransformer)(nil)
	_ pipeline.CSSInjector        = (*pipeline.CSSInjection)(nil)
	_ assets.AssetLoader          = (*internalLoader)(nil)
)

// Output file names.
const (
	IndexFile      = "index.html"
	StylesheetFile = "style.css"
)

// Renderer turns documents into complete HTML pages.
// Create with NewRenderer(), and Close() when done.
//
// A Renderer is safe for concurrent page rendering; PDF export serializes on
// the renderer's single browser. Use a RendererPool for parallel PDF export.
type Renderer struct {
	cfg               rendererConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	templates         *site.Templates
	transformer       pipeline.ContentTransformer
	cssInjector       pipeline.CSSInjector
	pdfConverter      pdfConverter
	css               string
	logger            *slog.Logger
	recorder          metrics.Recorder
}

// NewRenderer creates a Renderer. Assets are loaded and templates parsed
// up front, so template errors surface here rather than per page.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeout:        defaultTimeout,
			highlightStyle: pipeline.DefaultHighlightStyle,
		},
		assetLoader: assets.NewEmbeddedLoader(),
		transformer: &pipeline.RuleTransformer{},
		cssInjector: &pipeline.CSSInjection{},
		logger:      slog.New(slog.DiscardHandler),
		recorder:    metrics.NoopRecorder{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
		if err != nil {
			return nil, publicError(err)
		}
		r.assetLoader = resolver
	}
	if r.publicAssetLoader != nil {
		r.assetLoader = &internalLoader{pub: r.publicAssetLoader}
	}

	if r.cfg.buildID == "" {
		r.cfg.buildID = uuid.NewString()
	}
	if r.cfg.site.Title == "" {
		r.cfg.site.Title = DefaultSiteTitle
	}
	if r.cfg.site.Language == "" {
		r.cfg.site.Language = "en"
	}
	r.cfg.site.BasePath = strings.TrimSuffix(r.cfg.site.BasePath, "/")

	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	ts, err := r.loadTemplateSet()
	if err != nil {
		return nil, err
	}
	r.templates, err = site.Parse(ts)
	if err != nil {
		return nil, publicError(err)
	}

	if r.pdfConverter == nil {
		r.pdfConverter = newRodConverter(r.cfg.timeout)
	}

	return r, nil
}

// BuildID returns the identifier stamped into every page of this renderer.
func (r *Renderer) BuildID() string {
	return r.cfg.buildID
}

// Stylesheet returns the CSS written to style.css: the page style followed
// by the code highlighting rules. Empty when styling is disabled.
func (r *Renderer) Stylesheet() string {
	return r.css
}

// RenderSheet renders the page of one document. state selects the active
// sidebar entry; pass the zero NavState for a fresh page view.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) RenderSheet(ctx context.Context, doc Document, state NavState) (result *PageResult, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
		r.observePage(metrics.KindSheet, start, err, logfields.Slug(doc.Slug))
	}()

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	stageStart := time.Now()
	body, err := r.transformer.Transform(ctx, doc.HTML)
	if err != nil {
		return nil, err
	}
	body, err = pipeline.BalanceFragment(body)
	if err != nil {
		return nil, fmt.Errorf("balancing sheet markup: %w", err)
	}
	r.recorder.ObserveStageDuration("transform", time.Since(stageStart))

	pagePath := nav.RouteWithBase(r.cfg.site.BasePath, doc.Slug)
	page := &site.SheetPage{
		Page:     r.page(doc.Title, "sheet"),
		HomeHref: r.cfg.site.BasePath + "/",
		Sheet:    site.Sheet{Title: doc.Title, Date: doc.Date},
		Sidebar:  nav.Sidebar(state, pagePath, doc.Headings),
		Content:  template.HTML(body), // #nosec G203 -- balanced goldmark output without raw HTML
	}

	var buf bytes.Buffer
	stageStart = time.Now()
	if err := r.templates.RenderSheet(&buf, page); err != nil {
		return nil, publicError(err)
	}
	r.recorder.ObserveStageDuration("template", time.Since(stageStart))

	return &PageResult{HTML: buf.Bytes(), Path: doc.Slug + "/" + IndexFile}, nil
}

// RenderIndex renders the index page listing docs in the order given.
func (r *Renderer) RenderIndex(ctx context.Context, docs []Document) (result *PageResult, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
		r.observePage(metrics.KindIndex, start, err, logfields.Pages(len(docs)))
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := RenderIndex(docs)
	page := &site.IndexPage{
		Page:    r.page("", "home"),
		Entries: make([]site.IndexEntry, len(entries)),
	}
	for i, e := range entries {
		page.Entries[i] = site.IndexEntry{
			Href:  nav.RouteWithBase(r.cfg.site.BasePath, e.Slug),
			Title: e.Title,
			Card:  e.Card,
		}
	}

	var buf bytes.Buffer
	if err := r.templates.RenderIndex(&buf, page); err != nil {
		return nil, publicError(err)
	}
	return &PageResult{HTML: buf.Bytes(), Path: IndexFile}, nil
}

// RenderPDF prints a rendered page to PDF with headless Chrome. The
// stylesheet is inlined first, since the page is loaded from a temp file.
func (r *Renderer) RenderPDF(ctx context.Context, page *PageResult) (pdf []byte, err error) {
	if page == nil || len(page.HTML) == 0 {
		return nil, fmt.Errorf("%w: empty page", ErrPDFGeneration)
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
		r.observePage(metrics.KindPDF, start, err, logfields.Path(page.Path))
	}()

	htmlContent := string(page.HTML)
	if !r.cfg.inlineCSS {
		htmlContent = r.cssInjector.InjectCSS(ctx, htmlContent, r.css)
	}
	return r.pdfConverter.ToPDF(ctx, htmlContent)
}

// Close releases resources (headless Chrome browser).
func (r *Renderer) Close() error {
	if r.pdfConverter != nil {
		return r.pdfConverter.Close()
	}
	return nil
}

func (r *Renderer) page(title, bodyClass string) site.Page {
	p := site.Page{
		Site: site.Info{
			Title:       r.cfg.site.Title,
			Description: r.cfg.site.Description,
			Author:      r.cfg.site.Author,
			Language:    r.cfg.site.Language,
			BasePath:    r.cfg.site.BasePath,
		},
		Title:     title,
		BuildID:   r.cfg.buildID,
		BodyClass: bodyClass,
		Updated:   r.cfg.updated,
	}
	switch {
	case r.css == "":
	case r.cfg.inlineCSS:
		p.InlineCSS = template.CSS(pipeline.SanitizeCSS(r.css)) // #nosec G203 -- trusted stylesheet
	default:
		p.StylesheetHref = r.cfg.site.BasePath + "/" + StylesheetFile + "?v=" + shortID(r.cfg.buildID)
	}
	return p
}

func (r *Renderer) observePage(kind string, start time.Time, err error, subject slog.Attr) {
	d := time.Since(start)
	r.recorder.ObservePageDuration(kind, d)

	result := metrics.ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		result = metrics.ResultCanceled
	default:
		result = metrics.ResultFailed
	}
	r.recorder.IncPageResult(kind, result)

	attrs := []any{
		slog.String("kind", kind),
		subject,
		logfields.DurationMS(float64(d.Microseconds()) / 1000),
	}
	if err != nil {
		r.logger.Warn("page render failed", append(attrs, logfields.Error(err))...)
		return
	}
	r.logger.Debug("page rendered", attrs...)
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// and appends the code highlighting rules.
func (r *Renderer) resolveStyle() error {
	if r.cfg.noStyle {
		return nil
	}

	input := r.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	var css string
	switch {
	case fileutil.IsFilePath(input):
		data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		css = string(data)
	case fileutil.IsCSS(input):
		css = input
	default:
		loaded, err := r.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, publicError(err))
		}
		css = loaded
	}

	highlight, err := pipeline.HighlightCSS(r.cfg.highlightStyle)
	if err != nil {
		return err
	}
	r.css = css + "\n" + highlight
	return nil
}

func (r *Renderer) loadTemplateSet() (*assets.TemplateSet, error) {
	if r.cfg.templateSet != nil {
		return toInternalTemplateSet(r.cfg.templateSet), nil
	}
	name := r.cfg.templateSetName
	if name == "" {
		name = DefaultTemplateSet
	}
	ts, err := r.assetLoader.LoadTemplateSet(name)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", name, publicError(err))
	}
	return ts, nil
}

// validateDocument checks the fields every sheet page needs.
func validateDocument(doc Document) error {
	if strings.TrimSpace(doc.Slug) == "" {
		return ErrEmptySlug
	}
	if strings.TrimSpace(doc.Title) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyTitle, doc.Slug)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
