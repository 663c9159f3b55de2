// Package hints provides actionable error hints for common build failures.
// Hints are formatted as "\n  hint: <text>" and appended to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-cheatsheets/internal/fileutil"
)

// IsInContainer detects a Docker container through the /.dockerenv marker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for PDF export browser launch failures.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a local Chrome")
	}
	hints = append(hints, "or build without --pdf")

	return formatHints(hints)
}

// ForTimeout suggests raising the per-page timeout.
func ForTimeout() string {
	return format("for large sheets, raise --timeout")
}

// ForConfigNotFound suggests --config and the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/cheatsheets.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/cheatsheets") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForInputDirectory returns hints when the content directory is missing or empty.
func ForInputDirectory(dir string) string {
	return format("put .md files in " + dir + " or pass the content directory as an argument")
}

// ForDuplicateSlug explains how to resolve two sheets mapping to one route.
func ForDuplicateSlug() string {
	return format("set a distinct 'slug:' in the front matter of one sheet")
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check the output directory's parent exists and is writable")
}

// ForStyleNotFound lists embedded styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAddressInUse suggests another listen address for serve.
func ForAddressInUse() string {
	return format("pick a free port with --addr 127.0.0.1:8081")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
