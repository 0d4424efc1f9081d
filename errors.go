package nbsite

import (
	"errors"

	"github.com/alnah/go-nbsite/internal/assets"
	"github.com/alnah/go-nbsite/internal/notebook"
	"github.com/alnah/go-nbsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrReadNotebook    = notebook.ErrReadNotebook
	ErrInvalidNotebook = notebook.ErrInvalidJSON
	ErrRender          = pipeline.ErrRender

	// Page composition errors.
	ErrShellMarkerMissing    = pipeline.ErrContentMarkerMissing
	ErrTemplateMarkerMissing = pipeline.ErrTemplateMarkerMissing
	ErrLayoutNotFound        = assets.ErrLayoutNotFound

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrShellNotFound    = assets.ErrShellNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
