package site

import "errors"

// Sentinel errors for site builds.
var (
	ErrSourceDir      = errors.New("source directory is not readable")
	ErrAssetsDir      = errors.New("assets directory is not readable")
	ErrOutputDir      = errors.New("output directory must differ from source and assets directories")
	ErrInvalidPattern = errors.New("invalid glob pattern")
	ErrNoConverter    = errors.New("notebook converter is required")
	ErrReadPage       = errors.New("failed to read page")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrCopyAsset      = errors.New("failed to copy asset")
	ErrOutputConflict = errors.New("output path already produced by another file")
)
