package cheatsheets

import (
	"errors"

	"github.com/alnah/go-cheatsheets/internal/assets"
	"github.com/alnah/go-cheatsheets/internal/content"
	"github.com/alnah/go-cheatsheets/internal/pipeline"
	"github.com/alnah/go-cheatsheets/internal/site"
)

// Sentinel errors for library operations.
var (
	// Document validation and loading errors.
	ErrEmptySlug     = errors.New("document slug cannot be empty")
	ErrEmptyTitle    = errors.New("document title cannot be empty")
	ErrDuplicateSlug = errors.New("duplicate document slug")
	ErrNoDocuments   = errors.New("no markdown documents found")
	ErrInputDir      = errors.New("input directory not readable")

	// Rendering errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrPoolClosed     = errors.New("renderer pool is closed")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// errorMappings pairs internal sentinels with the public ones callers match.
var errorMappings = []struct {
	internal error
	public   error
}{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrInvalidAssetName, ErrStyleNotFound}, // Invalid name means not found
	{assets.ErrTemplateSetNotFound, ErrTemplateSetNotFound},
	{assets.ErrIncompleteTemplateSet, ErrIncompleteTemplateSet},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
	{content.ErrEmptySlug, ErrEmptySlug},
	{content.ErrDuplicateSlug, ErrDuplicateSlug},
	{content.ErrNoDocuments, ErrNoDocuments},
	{content.ErrInputDir, ErrInputDir},
	{pipeline.ErrHTMLConversion, ErrHTMLConversion},
	{site.ErrTemplateParse, ErrTemplateRender},
	{site.ErrTemplateRender, ErrTemplateRender},
}

// publicError maps an error from an internal package to the matching public
// sentinel. The original message is kept; errors.Is matches the sentinel and
// anything the original wraps, such as context.Canceled.
func publicError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.internal) {
			return &wrappedError{sentinel: m.public, original: err}
		}
	}
	return err
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap exposes the public sentinel and the original chain.
func (e *wrappedError) Unwrap() []error {
	return []error{e.sentinel, e.original}
}
