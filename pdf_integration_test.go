//go:build integration

package cheatsheets

// Notes:
// - Needs a Chrome/Chromium binary; rod downloads one when none is found.
// - Pages go through the real rod renderer, one browser per renderer.

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

const integrationTimeout = 60 * time.Second

func TestRenderPDF_Integration(t *testing.T) {
	r, err := NewRenderer(WithTimeout(integrationTimeout), WithBuildID("integration"))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	doc, err := ParseDocument(context.Background(), "go.md",
		[]byte("# Go\n\n{col-1/2}\n\n```go\nfmt.Println(1)\n```\n\nSee: [Effective Go](https://go.dev/doc/effective_go)\n"))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	page, err := r.RenderSheet(context.Background(), doc, NavState{})
	if err != nil {
		t.Fatalf("RenderSheet() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	pdf, err := r.RenderPDF(ctx, page)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestRenderPDF_Integration_Canceled(t *testing.T) {
	r, err := NewRenderer(WithTimeout(integrationTimeout))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.RenderPDF(ctx, &PageResult{HTML: []byte("<html><body>x</body></html>"), Path: "x/index.html"})
	if err == nil {
		t.Fatal("RenderPDF() expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, ErrPDFGeneration) && !errors.Is(err, ErrPageLoad) {
		t.Errorf("RenderPDF() error = %v", err)
	}
}
