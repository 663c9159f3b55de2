// Package content loads a directory of Markdown cheat sheets into documents
// ready for page rendering.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-cheatsheets/internal/dateutil"
	"github.com/alnah/go-cheatsheets/internal/frontmatter"
	"github.com/alnah/go-cheatsheets/internal/logfields"
	"github.com/alnah/go-cheatsheets/internal/nav"
	"github.com/alnah/go-cheatsheets/internal/pipeline"
)

// Sentinel errors for content loading.
var (
	ErrInputDir      = errors.New("input directory not readable")
	ErrNoDocuments   = errors.New("no markdown documents found")
	ErrEmptySlug     = errors.New("document slug is empty")
	ErrDuplicateSlug = errors.New("duplicate document slug")
	ErrReadDocument  = errors.New("failed to read document")
)

// Document is one loaded cheat sheet. HTML holds the converted body with
// sheet links already rewritten; the Content Transform is applied at render.
type Document struct {
	Title    string
	Slug     string
	Order    int
	Date     string
	HTML     string
	Headings []nav.Heading
	// Source is the slash-separated path relative to the content root.
	Source string
}

// Loader discovers and converts documents.
type Loader struct {
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	dateFormat   string
	basePath     string
	logger       *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDateFormat sets the token format used for display dates.
func WithDateFormat(format string) Option {
	return func(l *Loader) { l.dateFormat = format }
}

// WithBasePath sets the site base path used when rewriting sheet links.
func WithBasePath(basePath string) Option {
	return func(l *Loader) { l.basePath = basePath }
}

// WithConverter replaces the goldmark converter.
func WithConverter(c pipeline.HTMLConverter) Option {
	return func(l *Loader) {
		if c != nil {
			l.converter = c
		}
	}
}

// WithLogger sets the logger for per-document debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader with the goldmark converter and the sheet
// preprocessor.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		preprocessor: &pipeline.SheetPreprocessor{},
		converter:    pipeline.NewGoldmarkConverter(),
		dateFormat:   dateutil.DefaultDisplayFormat,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// source is a discovered file with its decoded front matter.
type source struct {
	rel   string
	front frontmatter.Front
	body  []byte
	slug  string
}

// LoadDir loads every Markdown file under dir. Names starting with "_" or "."
// are skipped, as are their subtrees. Documents come back sorted by Order,
// then Title.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDir, dir)
	}

	files, err := discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	sources := make([]source, 0, len(files))
	owners := make(map[string]string, len(files))
	routes := make(map[string]string, len(files))
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := readSource(dir, rel)
		if err != nil {
			return nil, err
		}
		if prev, ok := owners[src.slug]; ok {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateSlug, src.slug, prev, rel)
		}
		owners[src.slug] = rel
		routes[rel] = nav.RouteWithBase(l.basePath, src.slug)
		sources = append(sources, src)
	}

	docs := make([]Document, 0, len(sources))
	for _, src := range sources {
		doc, err := l.convert(ctx, src, routes)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	Sort(docs)
	return docs, nil
}

// Load converts a single Markdown source. rel is its slash-separated path
// relative to the content root; it names the document when the front matter
// carries no slug or title. Sheet links are not rewritten.
func (l *Loader) Load(ctx context.Context, rel string, data []byte) (Document, error) {
	src, err := parseSource(rel, data)
	if err != nil {
		return Document{}, err
	}
	return l.convert(ctx, src, nil)
}

func (l *Loader) convert(ctx context.Context, src source, routes map[string]string) (Document, error) {
	md := l.preprocessor.PreprocessMarkdown(ctx, string(src.body))
	frag, err := l.converter.ToHTML(ctx, md)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", src.rel, err)
	}

	html, err := pipeline.RewriteSheetLinks(frag.HTML, path.Dir(src.rel), routes)
	if err != nil {
		return Document{}, fmt.Errorf("%s: rewriting links: %w", src.rel, err)
	}

	date, err := dateutil.FormatDisplay(src.front.Date, l.dateFormat)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", src.rel, err)
	}

	title := src.front.Title
	if title == "" {
		title = frag.Title
	}
	if title == "" {
		title = baseName(src.rel)
	}

	l.logger.Debug("document loaded",
		logfields.Path(src.rel),
		logfields.Slug(src.slug),
		slog.Int("headings", len(frag.Headings)),
	)

	return Document{
		Title:    title,
		Slug:     src.slug,
		Order:    src.front.Order,
		Date:     date,
		HTML:     html,
		Headings: frag.Headings,
		Source:   src.rel,
	}, nil
}

// Sort orders documents by Order, then Title. Equal keys keep their order.
func Sort(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Order != docs[j].Order {
			return docs[i].Order < docs[j].Order
		}
		return docs[i].Title < docs[j].Title
	})
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func shouldSkip(name string) bool {
	return name != "" && (name[0] == '_' || name[0] == '.')
}

// discover returns slash-separated paths of Markdown files relative to dir,
// in lexical order.
func discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		if shouldSkip(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	return files, nil
}

func readSource(dir, rel string) (source, error) {
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return source{}, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}
	return parseSource(rel, data)
}

func parseSource(rel string, data []byte) (source, error) {
	front, body, err := frontmatter.Parse(data)
	if err != nil {
		return source{}, fmt.Errorf("%s: %w", rel, err)
	}

	slug := front.Slug
	if slug == "" {
		slug = Slugify(baseName(rel))
	}
	if slug == "" {
		return source{}, fmt.Errorf("%w: %s", ErrEmptySlug, rel)
	}

	return source{rel: rel, front: front, body: body, slug: slug}, nil
}

func baseName(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}
