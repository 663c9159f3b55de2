// Package site assembles full HTML pages from a template set.
//
// Every set has a layout (page shell) and two content templates, one for
// the index card grid and one for a sheet page. Each content template is
// parsed into its own clone of the layout, so both can define "content".
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/alnah/go-cheatsheets/internal/assets"
	"github.com/alnah/go-cheatsheets/internal/nav"
)

// Sentinel errors for page assembly.
var (
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")
)

const layoutName = "layout"

// Info describes the whole site and is shared by every page.
type Info struct {
	Title       string
	Description string
	Author      string
	Language    string
	BasePath    string
}

// Page carries the layout data common to every page.
type Page struct {
	Site           Info
	Title          string
	BuildID        string
	StylesheetHref string
	InlineCSS      template.CSS
	BodyClass      string
	Updated        string
}

// IndexEntry is one card of the index grid.
type IndexEntry struct {
	Href  string
	Title string
	Card  string
}

// IndexPage is the data of the index template.
type IndexPage struct {
	Page
	Entries []IndexEntry
}

// Sheet is the per-document header data.
type Sheet struct {
	Title string
	Date  string
}

// SheetPage is the data of the sheet template. Content is trusted,
// already-transformed HTML.
type SheetPage struct {
	Page
	HomeHref string
	Sheet    Sheet
	Sidebar  []nav.Item
	Content  template.HTML
}

// Templates holds the parsed index and sheet pages of one template set.
// Safe for concurrent use once parsed.
type Templates struct {
	index *template.Template
	sheet *template.Template
}

// Parse compiles a template set.
func Parse(ts *assets.TemplateSet) (*Templates, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: nil template set", ErrTemplateParse)
	}

	layout, err := template.New(layoutName).Parse(ts.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/layout.html: %v", ErrTemplateParse, ts.Name, err)
	}

	index, err := withContent(layout, ts.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/index.html: %v", ErrTemplateParse, ts.Name, err)
	}
	sheet, err := withContent(layout, ts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/sheet.html: %v", ErrTemplateParse, ts.Name, err)
	}

	return &Templates{index: index, sheet: sheet}, nil
}

func withContent(layout *template.Template, content string) (*template.Template, error) {
	clone, err := layout.Clone()
	if err != nil {
		return nil, err
	}
	return clone.Parse(content)
}

// RenderIndex writes the index page.
func (t *Templates) RenderIndex(w io.Writer, p *IndexPage) error {
	return execute(t.index, w, p)
}

// RenderSheet writes a sheet page.
func (t *Templates) RenderSheet(w io.Writer, p *SheetPage) error {
	return execute(t.sheet, w, p)
}

// execute renders into a buffer first so a failing template never leaves a
// partial page in w.
func execute(tmpl *template.Template, w io.Writer, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return nil
}
