package assets

import (
	"fmt"
	"strings"
)

// AssetLoader defines the contract for loading stylesheets and template sets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the layout, index and sheet templates of a set.
	// Returns ErrTemplateSetNotFound or ErrIncompleteTemplateSet.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Names with path separators or dots are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
