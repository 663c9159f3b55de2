package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-cheatsheets/internal/config"
)

// envPrefix marks the variables this CLI reads.
const envPrefix = "CHEATSHEETS_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // CHEATSHEETS_CONFIG: config file name or path
	InputDir   string        // CHEATSHEETS_INPUT_DIR: content directory
	OutputDir  string        // CHEATSHEETS_OUTPUT_DIR: output directory
	Style      string        // CHEATSHEETS_STYLE: CSS style name or path
	Title      string        // CHEATSHEETS_TITLE: site title
	BasePath   string        // CHEATSHEETS_BASE_PATH: URL prefix
	Workers    int           // CHEATSHEETS_WORKERS: parallel renderers
	Timeout    time.Duration // CHEATSHEETS_TIMEOUT: PDF export timeout
	Addr       string        // CHEATSHEETS_ADDR: serve listen address
}

// knownEnvVars lists valid CHEATSHEETS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHEATSHEETS_CONFIG":     true,
	"CHEATSHEETS_INPUT_DIR":  true,
	"CHEATSHEETS_OUTPUT_DIR": true,
	"CHEATSHEETS_STYLE":      true,
	"CHEATSHEETS_TITLE":      true,
	"CHEATSHEETS_BASE_PATH":  true,
	"CHEATSHEETS_WORKERS":    true,
	"CHEATSHEETS_TIMEOUT":    true,
	"CHEATSHEETS_ADDR":       true,
	"CHEATSHEETS_CONTAINER":  true, // read by doctor
}

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Invalid numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("CHEATSHEETS_CONFIG"),
		InputDir:   getenv("CHEATSHEETS_INPUT_DIR"),
		OutputDir:  getenv("CHEATSHEETS_OUTPUT_DIR"),
		Style:      getenv("CHEATSHEETS_STYLE"),
		Title:      getenv("CHEATSHEETS_TITLE"),
		BasePath:   getenv("CHEATSHEETS_BASE_PATH"),
		Addr:       getenv("CHEATSHEETS_ADDR"),
	}

	if timeout := getenv("CHEATSHEETS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("CHEATSHEETS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized CHEATSHEETS_*
// variable, e.g. CHEATSHEETS_OUTDIR instead of CHEATSHEETS_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Title != "" {
		cfg.Site.Title = env.Title
	}
	if env.BasePath != "" {
		cfg.Site.BasePath = env.BasePath
	}
	if env.Addr != "" {
		cfg.Serve.Addr = env.Addr
	}
}
