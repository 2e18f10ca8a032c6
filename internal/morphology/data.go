package morphology

import (
	"embed"
	"io/fs"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
)

//go:embed data/*.json
var embeddedDictionaries embed.FS

// defaultLanguages lists the languages shipping an embedded lemma dictionary.
var defaultLanguages = []string{"cs", "fi", "el"}

// EmbeddedDictionaries exposes the built-in dictionaries rooted at the data
// directory, mainly so tests and the CLI can enumerate them.
func EmbeddedDictionaries() fs.FS {
	sub, err := fs.Sub(embeddedDictionaries, "data")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// NewDefaultRegistry builds a Registry over the embedded dictionaries.  A
// dictionary that fails to load registers its language absent rather than
// failing construction: the engine degrades to surface matching for that
// language.  An optional overlay FS (nil to skip) takes precedence over the
// embedded data, letting deployments ship corrected or larger dictionaries
// without rebuilding.
func NewDefaultRegistry(overlay fs.FS, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	reg := NewRegistry(logger)

	embedded := EmbeddedDictionaries()
	for _, lang := range defaultLanguages {
		path := lang + ".json"
		source := embedded
		if overlay != nil {
			if _, err := fs.Stat(overlay, path); err == nil {
				source = overlay
			}
		}

		backend, err := NewDictionaryBackend("dictionary-"+lang, source, path, logger)
		if err != nil {
			logger.Warn("lemma dictionary failed to load",
				logging.String("language", lang), logging.Err(err))
			reg.RegisterAbsent(lang)
			continue
		}
		reg.Register(lang, backend)
	}
	return reg
}
