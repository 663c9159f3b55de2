package cheatsheets

import (
	"github.com/alnah/go-cheatsheets/internal/content"
	"github.com/alnah/go-cheatsheets/internal/nav"
)

// Document is one cheat sheet ready for rendering. HTML is the converted
// Markdown body; the Content Transform runs at render time.
type Document = content.Document

// Heading is one heading of a document, in document order.
type Heading = nav.Heading

// NavState is the sidebar's active heading for a single page view.
// The zero value is inactive.
type NavState = nav.State

// NewNavState returns the state for a URL fragment such as "#maps".
// An empty fragment, or "#" alone, is inactive.
func NewNavState(fragment string) NavState {
	return nav.NewState(fragment)
}

// SlugifyHeading returns the identifier of a heading: lower case, with each
// space replaced by "-". Headings with equal slugs share an identifier.
func SlugifyHeading(text string) string {
	return nav.SlugifyHeading(text)
}

// Route returns the page path of a slug, e.g. "/go/".
func Route(slug string) string {
	return nav.Route(slug)
}

// SiteInfo describes the site shown in every page shell.
type SiteInfo struct {
	Title       string
	Description string
	Author      string
	Language    string // html lang attribute, default "en"
	BasePath    string // URL prefix such as "/sheets"; empty for root
}

// DefaultSiteTitle is used when SiteInfo.Title is empty.
const DefaultSiteTitle = "Cheat Sheets"

// IndexEntry is one card of the index page.
type IndexEntry struct {
	Slug         string
	Title        string
	DisplayIndex int    // 0-based position in the listing
	Card         string // "card1", "card2" or "card3"
}

// PageResult is a rendered page and its output path relative to the
// output directory, using forward slashes.
type PageResult struct {
	HTML []byte
	Path string
}
