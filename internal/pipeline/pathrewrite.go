package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteSheetLinks converts relative links between sheets into site routes.
//
// routes maps a sheet's slash-separated path relative to the content root
// (e.g. "lang/go.md") to its route (e.g. "/go/"). sheetDir is the linking
// sheet's directory relative to the same root ("" or "." for the root).
// A link such as "../lang/go.md#maps" becomes "/go/#maps". Links that leave
// the content root or point at unknown files are left alone.
//
// HTML without a ".md" reference is returned as is, without a parse round trip.
func RewriteSheetLinks(htmlContent, sheetDir string, routes map[string]string) (string, error) {
	if len(routes) == 0 || !strings.Contains(htmlContent, ".md") {
		return htmlContent, nil
	}

	doc, err := parseFragment(htmlContent, atom.Body)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, sheetDir, routes)

	return renderFragment(doc)
}

func rewriteNode(n *html.Node, sheetDir string, routes map[string]string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if route, ok := resolveSheetLink(attr.Val, sheetDir, routes); ok {
				n.Attr[i].Val = route
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sheetDir, routes)
	}
}

// resolveSheetLink maps href to a route when it names a known sheet.
func resolveSheetLink(href, sheetDir string, routes map[string]string) (string, bool) {
	if !isRelativePath(href) {
		return "", false
	}

	target, fragment, _ := strings.Cut(href, "#")
	if !strings.HasSuffix(target, ".md") && !strings.HasSuffix(target, ".markdown") {
		return "", false
	}

	rel := path.Clean(path.Join(sheetDir, target))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	route, ok := routes[rel]
	if !ok {
		return "", false
	}
	if fragment != "" {
		route += "#" + fragment
	}
	return route, true
}

// isRelativePath returns true if the link points into the content tree.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "/") {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "mailto:", "data:", "//"} {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	return true
}
