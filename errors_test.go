package cheatsheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-cheatsheets/internal/assets"
	"github.com/alnah/go-cheatsheets/internal/content"
	"github.com/alnah/go-cheatsheets/internal/site"
)

func TestPublicError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		internal error
		want     error
	}{
		{name: "style not found", internal: assets.ErrStyleNotFound, want: ErrStyleNotFound},
		{name: "invalid asset name", internal: assets.ErrInvalidAssetName, want: ErrStyleNotFound},
		{name: "path traversal", internal: assets.ErrPathTraversal, want: ErrInvalidAssetPath},
		{name: "duplicate slug", internal: content.ErrDuplicateSlug, want: ErrDuplicateSlug},
		{name: "template parse", internal: site.ErrTemplateParse, want: ErrTemplateRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			orig := fmt.Errorf("%w: go.md", tt.internal)
			err := publicError(orig)
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}
			if !errors.Is(err, tt.internal) {
				t.Error("original chain lost")
			}
			if err.Error() != orig.Error() {
				t.Errorf("Error() = %q, want %q", err.Error(), orig.Error())
			}
		})
	}
}

func TestPublicError_PassThrough(t *testing.T) {
	t.Parallel()

	if publicError(nil) != nil {
		t.Error("publicError(nil) should be nil")
	}

	plain := errors.New("plain")
	if got := publicError(plain); got != plain {
		t.Errorf("publicError() = %v, want unchanged", got)
	}

	canceled := fmt.Errorf("loading go.md: %w", context.Canceled)
	if !errors.Is(publicError(canceled), context.Canceled) {
		t.Error("context.Canceled must survive")
	}
}

func TestPublicError_KeepsMessage(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader("/nonexistent/assets")
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Fatalf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
	if !strings.Contains(err.Error(), "/nonexistent/assets") {
		t.Errorf("message should keep the original text: %v", err)
	}
}
