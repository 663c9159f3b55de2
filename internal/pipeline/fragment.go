package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BalanceFragment reparses sheet HTML as the children of a <div> and renders
// it back, so the result always nests inside the element it is placed in.
//
// The content transform emits closers that have no opener in the fragment:
// a "See:" reference without a preceding code block, every later link
// paragraph, and each {col-2/2} marker. Inserted verbatim, they would close
// the page layout around the sheet. Stray end tags are dropped and unclosed
// elements are closed at the end of the fragment.
func BalanceFragment(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	doc, err := parseFragment(content, atom.Div)
	if err != nil {
		return "", err
	}
	return renderFragment(doc)
}

// parseFragment parses HTML as the children of a contextTag element and
// wraps the nodes in a container for uniform traversal.
func parseFragment(content string, contextTag atom.Atom) (*html.Node, error) {
	parent := &html.Node{
		Type:     html.ElementNode,
		DataAtom: contextTag,
		Data:     contextTag.String(),
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), parent)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
