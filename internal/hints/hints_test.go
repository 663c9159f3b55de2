package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they call t.Setenv and
//   swap the package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-dependent suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		inContainer bool
		ci          string
		noSandbox   string
		browserBin  string
		want        []string
		notWant     []string
	}{
		{
			name:    "CI without sandbox flag",
			ci:      "true",
			want:    []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN", "--pdf"},
			notWant: nil,
		},
		{
			name:        "docker",
			inContainer: true,
			want:        []string{"ROD_NO_SANDBOX"},
		},
		{
			name:       "sandbox and browser configured",
			ci:         "true",
			noSandbox:  "1",
			browserBin: "/usr/bin/chromium",
			want:       []string{"--pdf"},
			notWant:    []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
		},
		{
			name:       "local machine",
			browserBin: "/usr/bin/chromium",
			notWant:    []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.inContainer)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q missing %q", hint, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(hint, w) {
					t.Errorf("hint %q should not contain %q", hint, w)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Fixed hint texts
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hint     string
		contains string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"input directory", ForInputDirectory("content"), "content"},
		{"duplicate slug", ForDuplicateSlug(), "slug:"},
		{"output directory", ForOutputDirectory(), "writable"},
		{"address in use", ForAddressInUse(), "--addr"},
		{"config default", ForConfigNotFound(nil), "--config"},
		{
			"config user path",
			ForConfigNotFound([]string{"./site.yaml", "/home/u/.config/cheatsheets/site.yaml"}),
			"create /home/u/.config/cheatsheets/site.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.contains) {
				t.Errorf("hint %q missing %q", tt.hint, tt.contains)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	if got := ForStyleNotFound([]string{"default", "dark"}); !strings.Contains(got, "default, dark") {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}
