package main

// Notes:
// - ROD_BROWSER_BIN points at a missing file so results do not depend on a
//   Chrome install; the output dir is always set so nothing is created in the
//   package directory.

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func doctorEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()
	all := map[string]string{
		"ROD_BROWSER_BIN":        filepath.Join(t.TempDir(), "no-chrome"),
		"CHEATSHEETS_OUTPUT_DIR": filepath.Join(t.TempDir(), "public"),
	}
	for k, v := range vars {
		all[k] = v
	}
	return newTestEnv(all)
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Diagnostics
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env := doctorEnv(t, nil)
	code := runDoctorCmd(context.Background(), []string{"--json", sampleContent(t)}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d (stdout: %s)", code, ExitSuccess, env.stdout)
	}

	var result doctorResult
	if err := json.Unmarshal(env.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, env.stdout)
	}
	if result.Status != "warnings" {
		t.Errorf("status = %q, want warnings (Chrome missing)", result.Status)
	}
	if result.Content.Sheets != 3 || !result.Output.Writable || result.Chrome.Found {
		t.Errorf("result = %+v", result)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "Chrome not found") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestRunDoctorCmd_Text(t *testing.T) {
	t.Parallel()

	env := doctorEnv(t, nil)
	code := runDoctorCmd(context.Background(), []string{sampleContent(t)}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"cheatsheets doctor", "[OK] 3 sheet(s)", "[OK] Output directory writable", "[WARN] Not found"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, env.stdout)
		}
	}
}

func TestRunDoctorCmd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		vars map[string]string
		want string
	}{
		{
			name: "missing content",
			args: []string{"--json", filepath.Join(t.TempDir(), "missing")},
			want: "Content:",
		},
		{
			name: "duplicate slug",
			args: []string{"--json", writeContent(t, map[string]string{"Go.md": "# Go\n", "sub/go.md": "# Go\n"})},
			want: "Content:",
		},
		{
			name: "missing config",
			args: []string{"--json", "-c", filepath.Join(t.TempDir(), "none.yaml"), sampleContent(t)},
			want: "Config:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := doctorEnv(t, tt.vars)
			if code := runDoctorCmd(context.Background(), tt.args, env.Environment); code != ExitGeneral {
				t.Errorf("exit code = %d, want %d", code, ExitGeneral)
			}

			var result doctorResult
			if err := json.Unmarshal(env.stdout.Bytes(), &result); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if result.Status != "errors" {
				t.Errorf("status = %q, want errors", result.Status)
			}
			found := false
			for _, e := range result.Errors {
				if strings.HasPrefix(e, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors = %v, want one starting with %q", result.Errors, tt.want)
			}
		})
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env := doctorEnv(t, nil)
	if code := runDoctorCmd(context.Background(), []string{"--nope"}, env.Environment); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestIsContainer(t *testing.T) {
	t.Parallel()

	if ok, hint := isContainer(mapGetenv(map[string]string{"CHEATSHEETS_CONTAINER": "1"})); !ok || hint != "CHEATSHEETS_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", ok, hint)
	}
	if ok, hint := isContainer(mapGetenv(map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"})); !ok || hint == "" {
		t.Errorf("isContainer() = %v, %q", ok, hint)
	}
}
