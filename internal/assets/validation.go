package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateLayoutName checks a layout reference taken from a page.
// Layouts may live in subdirectories and carry an extension, but must be
// relative and must not climb out of the layouts directory.
func ValidateLayoutName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty layout name", ErrInvalidAssetName)
	}
	if strings.Contains(name, "\\") || strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
