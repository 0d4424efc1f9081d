package assets

// AssetLoader defines the contract for loading CSS styles and page shells.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadShell loads a page shell by name (without .html extension).
	// Returns ErrShellNotFound if the shell doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadShell(name string) (string, error)
}
