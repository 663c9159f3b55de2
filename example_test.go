package cheatsheets_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-cheatsheets"
)

// Example renders one sheet with its sidebar entry for "#maps" active.
// Rendering HTML needs no browser.
func Example() {
	doc, err := cheatsheets.ParseDocument(context.Background(), "go.md",
		[]byte("# Go\n\n## Maps\n\n## Slices\n"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	r, err := cheatsheets.NewRenderer(cheatsheets.WithBuildID("example"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = r.Close() }()

	page, err := r.RenderSheet(context.Background(), doc, cheatsheets.NewNavState("#maps"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(page.Path)
	fmt.Println(strings.Count(string(page.HTML), `class="active"`))
	// Output:
	// go/index.html
	// 1
}

// ExampleRenderIndex shows the card classes cycling over the listing.
func ExampleRenderIndex() {
	docs := []cheatsheets.Document{
		{Slug: "go", Title: "Go"},
		{Slug: "rust", Title: "Rust"},
		{Slug: "bash", Title: "Bash"},
		{Slug: "sql", Title: "SQL"},
	}
	for _, e := range cheatsheets.RenderIndex(docs) {
		fmt.Println(e.DisplayIndex, e.Slug, e.Card)
	}
	// Output:
	// 0 go card1
	// 1 rust card2
	// 2 bash card3
	// 3 sql card1
}

func ExampleSlugifyHeading() {
	fmt.Println(cheatsheets.SlugifyHeading("API Reference"))
	// Output: api-reference
}
