// Package cheatsheets renders a directory of Markdown cheat sheets into a
// static website: an index page with a card grid and one page per sheet
// with a heading sidebar.
//
// # Quick Start
//
// Load the documents, create a renderer, render pages, and close when done:
//
//	docs, err := cheatsheets.LoadDir(ctx, "content", cheatsheets.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := cheatsheets.NewRenderer(cheatsheets.WithSite(cheatsheets.SiteInfo{
//	    Title: "Alex's Cheat Sheets",
//	}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	index, err := r.RenderIndex(ctx, docs)
//	page, err := r.RenderSheet(ctx, docs[0], cheatsheets.NavState{})
//
// Each PageResult carries the HTML and its path under the output directory
// ("index.html", "go/index.html"). Write Renderer.Stylesheet() to
// "style.css" unless WithInlineCSS is set.
//
// # Rendering Pipeline
//
//  1. Front matter split and decode (title, slug, order, date)
//  2. Markdown preprocessing (line endings, blank lines)
//  3. Markdown to HTML via Goldmark (GFM, ==highlight==, syntax highlighting,
//     heading ids)
//  4. Rewriting of relative .md links to site routes
//  5. Content transform: "See:" reference paragraphs and {col-1/2} columns
//  6. Page assembly with html/template (sidebar, page shell)
//  7. Optional PDF export via headless Chrome (go-rod)
//
// # Content Markers
//
// A paragraph starting with "See: " followed by a link is styled as a
// reference opening in a new tab. A paragraph holding only {col-1/2} or
// {col-2/2} wraps the block after it in a half-width column; {col-2/2}
// also closes the column pair.
//
// # Sidebar State
//
// NavState holds the active heading of one page view. NewNavState("#maps")
// marks the "Maps" entry active; the zero value marks none. Heading ids and
// sidebar links both use SlugifyHeading.
//
// # Parallel Processing
//
// For batch builds, use RendererPool to manage multiple renderers:
//
//	pool := cheatsheets.NewRendererPool(cheatsheets.ResolvePoolSize(0))
//	defer pool.Close()
//
//	r, err := pool.Acquire()
//	defer pool.Release(r)
//
// # Browser Requirements
//
// Only PDF export needs Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first use (~/.cache/rod/browser/). For containers and
// CI, set ROD_NO_SANDBOX=1; use ROD_BROWSER_BIN for a custom binary.
package cheatsheets
