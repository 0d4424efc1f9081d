package main

import (
	"errors"
	"os"

	"github.com/alnah/go-nbsite"
	"github.com/alnah/go-nbsite/internal/assets"
	"github.com/alnah/go-nbsite/internal/config"
	"github.com/alnah/go-nbsite/internal/site"
)

// Exit codes for the nbsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // Some files failed, or unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Per-file failures are reported line by line (exit 1)
	if errors.Is(err, ErrBuildFailed) {
		return ExitGeneral
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, nbsite.ErrStyleNotFound) ||
		errors.Is(err, nbsite.ErrShellNotFound) ||
		errors.Is(err, nbsite.ErrShellMarkerMissing) ||
		errors.Is(err, nbsite.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, site.ErrInvalidPattern) ||
		errors.Is(err, site.ErrOutputDir) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, nbsite.ErrReadNotebook) ||
		errors.Is(err, site.ErrSourceDir) ||
		errors.Is(err, site.ErrAssetsDir) ||
		errors.Is(err, site.ErrWriteOutput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
