// Package nav tracks which heading of a sheet is highlighted in the sidebar.
//
// A State is scoped to a single page view: a new sheet starts from a fresh
// value and the only transition is Select. Heading identifiers come from
// SlugifyHeading, used both for link fragments and for the active check so a
// highlighted entry always matches its link.
package nav

import "strings"

// SlugifyHeading lower-cases text and replaces every space with "-".
// Nothing else changes: punctuation survives, and headings that differ only
// in case collide.
func SlugifyHeading(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "-")
}

// State holds the active heading identifier of one page view.
// The zero value is inactive.
type State struct {
	active string
}

// NewState derives the initial state from a URL fragment. An empty fragment
// or a lone "#" gives an inactive state.
func NewState(fragment string) State {
	return State{active: strings.TrimPrefix(fragment, "#")}
}

// Select records id as the active heading, replacing any previous one.
func (s *State) Select(id string) {
	s.active = id
}

// SetActive is an alias of Select.
func (s *State) SetActive(id string) {
	s.Select(id)
}

// Active returns the active identifier, or "" when inactive.
func (s State) Active() string {
	return s.active
}

// IsActive reports whether id is the active heading. Always false while
// the state is inactive.
func (s State) IsActive(id string) bool {
	return s.active != "" && s.active == id
}

// Heading is the text of one heading in document order.
type Heading struct {
	Value string
	Level int
}

// Item is one sidebar entry.
type Item struct {
	Text   string
	ID     string
	Href   string
	Level  int
	Active bool
}

// Sidebar builds one item per heading, in document order.
func Sidebar(state State, pagePath string, headings []Heading) []Item {
	items := make([]Item, 0, len(headings))
	for _, h := range headings {
		id := SlugifyHeading(h.Value)
		items = append(items, Item{
			Text:   h.Value,
			ID:     id,
			Href:   DeepLink(pagePath, id),
			Level:  h.Level,
			Active: state.IsActive(id),
		})
	}
	return items
}

// SelectHeading activates the sidebar entry whose text is value.
func SelectHeading(state *State, value string) {
	state.Select(SlugifyHeading(value))
}

// DeepLink builds the link to heading id on the page at pagePath.
func DeepLink(pagePath, id string) string {
	return pagePath + "#" + id
}

// Route builds the page path of a sheet: "/" + slug + "/".
func Route(slug string) string {
	return "/" + slug + "/"
}

// RouteWithBase prefixes Route with a site base path such as "/sheets".
func RouteWithBase(basePath, slug string) string {
	return strings.TrimSuffix(basePath, "/") + Route(slug)
}
