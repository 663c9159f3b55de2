package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-cheatsheets/internal/nav"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used for code block CSS.
const DefaultHighlightStyle = "github"

// Fragment is a converted sheet body.
type Fragment struct {
	HTML     string
	Headings []nav.Heading
	// Title is the text of the first level-1 heading, if any.
	Title string
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (*Fragment, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// class-based syntax highlighting. Code blocks are wrapped in
// <div class="code-block" data-language="..."> containers.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			MarkExtension,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					html.WithClasses(true),
				),
				highlighting.WithWrapperRenderer(renderCodeBlockWrapper),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			// WithUnsafe is not used: raw HTML in sheets is omitted.
		),
	)
	return &GoldmarkConverter{md: md}
}

func renderCodeBlockWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return
	}
	_, _ = w.WriteString(`<div class="code-block"`)
	if lang, ok := c.Language(); ok && len(lang) > 0 {
		_, _ = w.WriteString(` data-language="`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}

// ToHTML converts Markdown content to an HTML fragment and its heading
// outline. Heading ids are set with nav.SlugifyHeading so sidebar links
// resolve. Goldmark has no context support; conversion runs in a goroutine
// and ctx cancellation returns early.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		frag *Fragment
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, r)}
			}
		}()

		src := []byte(content)
		doc := c.md.Parser().Parse(text.NewReader(src))
		frag := &Fragment{Headings: collectHeadings(doc, src)}
		for _, h := range frag.Headings {
			if h.Level == 1 {
				frag.Title = h.Value
				break
			}
		}

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		frag.HTML = buf.String()
		done <- result{frag: frag}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

// collectHeadings walks the AST in document order, records each heading and
// assigns its id attribute.
func collectHeadings(doc ast.Node, src []byte) []nav.Heading {
	var headings []nav.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		value := strings.TrimSpace(inlineText(h, src))
		if value == "" {
			return ast.WalkSkipChildren, nil
		}
		h.SetAttributeString("id", []byte(nav.SlugifyHeading(value)))
		headings = append(headings, nav.Heading{Value: value, Level: h.Level})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// HighlightCSS returns the stylesheet for class-based code highlighting.
// Unknown style names fall back to chroma's default style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
