package cheatsheets

import (
	"log/slog"
	"time"

	"github.com/alnah/go-cheatsheets/internal/metrics"
)

// defaultTimeout bounds a single PDF export.
const defaultTimeout = 30 * time.Second

// rendererConfig holds Renderer configuration set through options.
type rendererConfig struct {
	timeout         time.Duration
	styleInput      string // name, file path, or CSS content
	noStyle         bool
	assetPath       string
	templateSetName string
	templateSet     *TemplateSet
	site            SiteInfo
	inlineCSS       bool
	highlightStyle  string
	buildID         string
	updated         string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the PDF export timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.cfg.timeout = d
		}
	}
}

// WithStyle sets the stylesheet. The value is a built-in or custom style
// name, a path to a CSS file, or CSS content.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = style
	}
}

// WithNoStyle renders pages without a stylesheet.
func WithNoStyle() Option {
	return func(r *Renderer) {
		r.cfg.noStyle = true
	}
}

// WithAssetPath loads styles and templates from a directory, falling back
// to the embedded assets.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.publicAssetLoader = loader
	}
}

// WithTemplateSet uses the given template set instead of loading one.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(r *Renderer) {
		r.cfg.templateSet = ts
	}
}

// WithTemplateSetName loads the named template set through the asset loader.
func WithTemplateSetName(name string) Option {
	return func(r *Renderer) {
		r.cfg.templateSetName = name
	}
}

// WithSite sets the site information shown in the page shell.
func WithSite(info SiteInfo) Option {
	return func(r *Renderer) {
		r.cfg.site = info
	}
}

// WithInlineCSS embeds the stylesheet in every page instead of linking
// style.css.
func WithInlineCSS(inline bool) Option {
	return func(r *Renderer) {
		r.cfg.inlineCSS = inline
	}
}

// WithHighlightStyle sets the chroma style used for code blocks.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.highlightStyle = name
	}
}

// WithBuildID sets the build identifier. By default each Renderer gets a
// random UUID.
func WithBuildID(id string) Option {
	return func(r *Renderer) {
		r.cfg.buildID = id
	}
}

// WithUpdated sets the "Updated" text of the page footer.
func WithUpdated(text string) Option {
	return func(r *Renderer) {
		r.cfg.updated = text
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
