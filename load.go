package cheatsheets

import (
	"context"
	"log/slog"

	"github.com/alnah/go-cheatsheets/internal/content"
)

// LoadOptions configures LoadDir.
type LoadOptions struct {
	// DateFormat renders front matter dates, e.g. "MMMM DD, YYYY" (default)
	// or a preset such as "iso".
	DateFormat string
	// BasePath prefixes the routes that sheet links are rewritten to.
	BasePath string
	Logger   *slog.Logger
}

// LoadDir reads every Markdown file under dir into documents sorted by
// front matter order, then title. Files and directories whose names start
// with "_" or "." are skipped. Relative links between sheets are rewritten
// to site routes.
func LoadDir(ctx context.Context, dir string, opts LoadOptions) ([]Document, error) {
	loaderOpts := []content.Option{
		content.WithBasePath(opts.BasePath),
		content.WithLogger(opts.Logger),
	}
	if opts.DateFormat != "" {
		loaderOpts = append(loaderOpts, content.WithDateFormat(opts.DateFormat))
	}

	docs, err := content.NewLoader(loaderOpts...).LoadDir(ctx, dir)
	if err != nil {
		return nil, publicError(err)
	}
	return docs, nil
}

// ParseDocument converts one Markdown source into a Document. name is the
// file name relative to the content root; it supplies the slug and title
// when the front matter has none.
func ParseDocument(ctx context.Context, name string, markdown []byte) (Document, error) {
	doc, err := content.NewLoader().Load(ctx, name, markdown)
	if err != nil {
		return Document{}, publicError(err)
	}
	return doc, nil
}
