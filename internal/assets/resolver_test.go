package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("expected no custom loader for empty path")
	}

	r, err = NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if !r.HasCustomLoader() {
		t.Error("expected custom loader for valid path")
	}

	if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles/default.css", "/* overridden */")
	writeAsset(t, base, "styles/brand.css", "/* brand */")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "custom overrides embedded", style: "default", want: "/* overridden */"},
		{name: "custom only", style: "brand", want: "/* brand */"},
		{name: "falls back to embedded", style: "dark", want: ":root"},
		{name: "missing everywhere", style: "nope", wantErr: ErrStyleNotFound},
		{name: "invalid name does not fall back", style: "../x", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("LoadStyle(%q) = %.40q, want it to contain %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestAssetResolver_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplateSet(t, base, "default")
	writeAsset(t, base, "templates/broken/layout.html", "<html></html>")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	ts, err := r.LoadTemplateSet("default")
	if err != nil {
		t.Fatalf("LoadTemplateSet(default) error = %v", err)
	}
	if !strings.Contains(ts.Sheet, "custom sheet") {
		t.Error("custom template set should take precedence")
	}

	if _, err := r.LoadTemplateSet("broken"); !errors.Is(err, ErrIncompleteTemplateSet) {
		t.Errorf("incomplete custom set error = %v, want ErrIncompleteTemplateSet", err)
	}

	embeddedOnly, err := NewAssetResolver("")
	if err != nil {
		t.Fatal(err)
	}
	ts, err = embeddedOnly.LoadTemplateSet("default")
	if err != nil {
		t.Fatalf("embedded LoadTemplateSet error = %v", err)
	}
	if !strings.Contains(ts.Index, "glass") {
		t.Error("embedded template set not loaded")
	}
}
