package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/alnah/go-cheatsheets"
	"github.com/alnah/go-cheatsheets/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unknown", err: errors.New("boom"), want: ExitGeneral},
		{name: "canceled", err: context.Canceled, want: ExitGeneral},

		{name: "browser connect", err: fmt.Errorf("rendering: %w", cheatsheets.ErrBrowserConnect), want: ExitBrowser},
		{name: "pdf generation", err: cheatsheets.ErrPDFGeneration, want: ExitBrowser},

		{name: "missing file", err: fmt.Errorf("open: %w", fs.ErrNotExist), want: ExitIO},
		{name: "input dir", err: cheatsheets.ErrInputDir, want: ExitIO},
		{name: "no documents", err: cheatsheets.ErrNoDocuments, want: ExitIO},
		{name: "write page", err: fmt.Errorf("%w: public/go/index.html", ErrWritePage), want: ExitIO},
		{name: "address in use", err: ErrAddressInUse, want: ExitIO},

		{name: "config not found", err: fmt.Errorf("loading config: %w", config.ErrConfigNotFound), want: ExitUsage},
		{name: "invalid config value", err: config.ErrInvalidValue, want: ExitUsage},
		{name: "duplicate slug", err: cheatsheets.ErrDuplicateSlug, want: ExitUsage},
		{name: "style not found", err: cheatsheets.ErrStyleNotFound, want: ExitUsage},
		{name: "workers", err: ErrInvalidWorkerCount, want: ExitUsage},
		{name: "unsafe clean", err: ErrUnsafeClean, want: ExitUsage},
		{name: "usage", err: fmt.Errorf("%w: bad flag", ErrUsage), want: ExitUsage},
		{name: "unsupported shell", err: ErrUnsupportedShell, want: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
