package main

import (
	"errors"
	"os"

	"github.com/alnah/go-cheatsheets"
	"github.com/alnah/go-cheatsheets/internal/config"
)

// Exit codes for the cheatsheets CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Content or output directory problems
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cheatsheets.ErrBrowserConnect) ||
		errors.Is(err, cheatsheets.ErrPageCreate) ||
		errors.Is(err, cheatsheets.ErrPageLoad) ||
		errors.Is(err, cheatsheets.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, cheatsheets.ErrInputDir) ||
		errors.Is(err, cheatsheets.ErrNoDocuments) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrAddressInUse) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, cheatsheets.ErrEmptySlug) ||
		errors.Is(err, cheatsheets.ErrEmptyTitle) ||
		errors.Is(err, cheatsheets.ErrDuplicateSlug) ||
		errors.Is(err, cheatsheets.ErrStyleNotFound) ||
		errors.Is(err, cheatsheets.ErrTemplateSetNotFound) ||
		errors.Is(err, cheatsheets.ErrIncompleteTemplateSet) ||
		errors.Is(err, cheatsheets.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsafeClean) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
