package assets

import (
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates base/rel with content, creating parent directories.
func writeAsset(t *testing.T, base, rel, content string) {
	t.Helper()
	p := filepath.Join(base, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// writeTemplateSet writes a complete template set named name under base.
func writeTemplateSet(t *testing.T, base, name string) {
	t.Helper()
	writeAsset(t, base, "templates/"+name+"/layout.html", `<html>{{template "content" .}}</html>`)
	writeAsset(t, base, "templates/"+name+"/index.html", `{{define "content"}}custom index{{end}}`)
	writeAsset(t, base, "templates/"+name+"/sheet.html", `{{define "content"}}custom sheet{{end}}`)
}
