package cheatsheets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSheet(t *testing.T, dir, rel, data string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSheet(t, dir, "go.md", "---\ntitle: Go\norder: 1\ndate: 2020-05-01\n---\n## Maps\n\n```go\nm := map[string]int{}\n```\n\nSee: [Go maps](https://go.dev/blog/maps)\n")
	writeSheet(t, dir, "rust.md", "---\norder: 2\n---\n# Rust\n\nSee [Go](go.md#maps).\n")

	docs, err := LoadDir(context.Background(), dir, LoadOptions{DateFormat: "iso"})
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(docs) != 2 || docs[0].Slug != "go" || docs[1].Title != "Rust" {
		t.Fatalf("docs = %+v", docs)
	}
	if docs[0].Date != "2020-05-01" {
		t.Errorf("Date = %q, want %q", docs[0].Date, "2020-05-01")
	}
	if !strings.Contains(docs[1].HTML, `href="/go/#maps"`) {
		t.Errorf("link not rewritten: %s", docs[1].HTML)
	}

	// The code block wrapper and the reference paragraph meet the transform.
	r := newTestRenderer(t)
	page, err := r.RenderSheet(context.Background(), docs[0], NewNavState("#maps"))
	if err != nil {
		t.Fatalf("RenderSheet() error = %v", err)
	}
	html := string(page.HTML)
	if !strings.Contains(html, `<p class="reference">See: <a target="_blank" href="https://go.dev/blog/maps">Go maps</a></p></div>`) {
		t.Errorf("reference not styled:\n%s", html)
	}
	if !strings.Contains(html, `<h2 id="maps">Maps</h2>`) {
		t.Errorf("heading id missing:\n%s", html)
	}
}

func TestLoadDir_PublicErrors(t *testing.T) {
	t.Parallel()

	t.Run("duplicate slug", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSheet(t, dir, "a/go.md", "# Go")
		writeSheet(t, dir, "b/go.md", "# Go")
		_, err := LoadDir(context.Background(), dir, LoadOptions{})
		if !errors.Is(err, ErrDuplicateSlug) {
			t.Errorf("error = %v, want ErrDuplicateSlug", err)
		}
	})

	t.Run("no documents", func(t *testing.T) {
		t.Parallel()

		_, err := LoadDir(context.Background(), t.TempDir(), LoadOptions{})
		if !errors.Is(err, ErrNoDocuments) {
			t.Errorf("error = %v, want ErrNoDocuments", err)
		}
	})

	t.Run("missing dir", func(t *testing.T) {
		t.Parallel()

		_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"), LoadOptions{})
		if !errors.Is(err, ErrInputDir) {
			t.Errorf("error = %v, want ErrInputDir", err)
		}
	})
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(context.Background(), "Kubernetes Basics.md", []byte("## Pods\n\n## Services\n"))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Slug != "kubernetes-basics" || doc.Title != "Kubernetes Basics" || len(doc.Headings) != 2 {
		t.Errorf("doc = %+v", doc)
	}

	_, err = ParseDocument(context.Background(), "!!!.md", []byte("# x"))
	if !errors.Is(err, ErrEmptySlug) {
		t.Errorf("error = %v, want ErrEmptySlug", err)
	}
}
