// Package config loads the YAML configuration file for site builds.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-cheatsheets/internal/dateutil"
	"github.com/alnah/go-cheatsheets/internal/fileutil"
	"github.com/alnah/go-cheatsheets/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxNameLength        = 100
	MaxLanguageLength    = 35 // BCP 47 upper bound in practice
	MaxPathLength        = 4096
	MaxURLPathLength     = 2048
	MaxStyleLength       = 4096 // style may be a path
	MaxAddrLength        = 255
	MaxDurationLength    = 20
)

// DefaultAddr is the listen address of the preview server.
const DefaultAddr = "127.0.0.1:8080"

// DefaultPDFTimeout bounds one PDF export.
const DefaultPDFTimeout = 30 * time.Second

// appDir is the directory name under the user config directory.
const appDir = "cheatsheets"

// Config holds all configuration for a site build.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  string       `yaml:"style"` // Style name, path, or empty for default
	Assets AssetsConfig `yaml:"assets"`
	PDF    PDFConfig    `yaml:"pdf"`
	Serve  ServeConfig  `yaml:"serve"`
}

// SiteConfig describes the site shown in the page shell.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Language    string `yaml:"language"`
	BasePath    string `yaml:"basePath"`   // e.g. "/sheets"; empty serves from root
	DateFormat  string `yaml:"dateFormat"` // tokens or preset, default "MMMM DD, YYYY"
}

// InputConfig defines the content source.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig defines the build destination.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Clean bool   `yaml:"clean"` // remove the output dir before building
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	TemplateSet string `yaml:"templateSet"` // Empty = "default"
}

// PDFConfig defines optional PDF export.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// ServeConfig defines the preview server.
type ServeConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"` // expose /metrics
}

// Validate checks field lengths and value formats.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.language", c.Site.Language, MaxLanguageLength},
		{"site.basePath", c.Site.BasePath, MaxURLPathLength},
		{"site.dateFormat", c.Site.DateFormat, dateutil.MaxDateFormatLength},
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"pdf.timeout", c.PDF.Timeout, MaxDurationLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("%w: site.basePath %q must start with /", ErrInvalidValue, c.Site.BasePath)
	}
	if c.Site.DateFormat != "" {
		if _, ok := dateutil.DatePresets[strings.ToLower(c.Site.DateFormat)]; !ok {
			if _, err := dateutil.ParseDateFormat(c.Site.DateFormat); err != nil {
				return fmt.Errorf("%w: site.dateFormat: %v", ErrInvalidValue, err)
			}
		}
	}
	if _, err := c.PDFTimeout(); err != nil {
		return err
	}
	return nil
}

// PDFTimeout returns the parsed pdf.timeout, or DefaultPDFTimeout when unset.
func (c *Config) PDFTimeout() (time.Duration, error) {
	if c.PDF.Timeout == "" {
		return DefaultPDFTimeout, nil
	}
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site:  SiteConfig{Title: "Cheat Sheets", Language: "en"},
		Input: InputConfig{Dir: "content"},
		Output: OutputConfig{
			Dir: "public",
		},
		Serve: ServeConfig{Addr: DefaultAddr},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/cheatsheets/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
