package lexicon

import (
	"embed"
	"io/fs"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
)

//go:embed data/*.json
var embeddedData embed.FS

// EmbeddedData exposes the built-in pattern data rooted at the data directory.
func EmbeddedData() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS serves a file from the overlay when present, the base otherwise.
type overlayFS struct {
	overlay fs.FS
	base    fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if f, err := o.overlay.Open(name); err == nil {
		return f, nil
	}
	return o.base.Open(name)
}

// NewDefaultStore builds a Store over the embedded data, optionally shadowed
// by an overlay FS (nil to skip).  Deployments point the overlay at a data
// directory to extend or correct pattern sets without rebuilding.
func NewDefaultStore(overlay fs.FS, logger logging.Logger) *Store {
	fsys := EmbeddedData()
	if overlay != nil {
		fsys = overlayFS{overlay: overlay, base: fsys}
	}
	return NewStore(fsys, logger)
}
