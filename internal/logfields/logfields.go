// Package logfields holds canonical log/slog attribute keys so that build,
// render and serve log lines stay greppable across packages.
package logfields

import "log/slog"

const (
	KeySlug       = "slug"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyPages      = "pages"
	KeyBuildID    = "build_id"
	KeyEvent      = "event"
	KeyAddr       = "addr"
	KeyError      = "error"
)

func Slug(s string) slog.Attr { return slog.String(KeySlug, s) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Pages(n int) slog.Attr { return slog.Int(KeyPages, n) }
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Event(e string) slog.Attr { return slog.String(KeyEvent, e) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }

// Error renders err as a string attribute; nil gives an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
