package cheatsheets

import (
	"github.com/alnah/go-cheatsheets/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = "default"

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = "default"
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from the filesystem, embedded assets or any
// other store.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the layout, index and sheet templates of a set.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if required templates are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the html/template sources of a site theme.
//
// Layout is the page shell and must call {{template "content" .}}. Index and
// Sheet each define "content".
type TemplateSet struct {
	Name   string
	Layout string
	Index  string
	Sheet  string
}

// NewTemplateSet creates a TemplateSet from template sources.
func NewTemplateSet(name, layout, index, sheet string) *TemplateSet {
	return &TemplateSet{Name: name, Layout: layout, Index: index, Sheet: sheet}
}

// AvailableStyles lists the built-in style names.
func AvailableStyles() []string {
	return assets.AvailableStyles()
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}/layout.html, index.html and sheet.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, publicError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	css, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", publicError(err)
	}
	return css, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, publicError(err)
	}
	return toPublicTemplateSet(ts), nil
}

// internalLoader adapts a public AssetLoader to the internal interface.
type internalLoader struct {
	pub AssetLoader
}

func (a *internalLoader) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *internalLoader) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return toInternalTemplateSet(ts), nil
}

func toPublicTemplateSet(ts *assets.TemplateSet) *TemplateSet {
	return &TemplateSet{Name: ts.Name, Layout: ts.Layout, Index: ts.Index, Sheet: ts.Sheet}
}

func toInternalTemplateSet(ts *TemplateSet) *assets.TemplateSet {
	return &assets.TemplateSet{Name: ts.Name, Layout: ts.Layout, Index: ts.Index, Sheet: ts.Sheet}
}
