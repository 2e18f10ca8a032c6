package lexicon

import (
	"encoding/json"
	"io/fs"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
)

// TermEntry is one curated lexicon entry: a word pattern together with its
// editorial definition and usage example.
type TermEntry struct {
	Word         string `json:"word"`
	Definition   string `json:"definition"`
	UsageExample string `json:"usage_example"`
}

// Store resolves pattern source ids to pattern sets backed by an fs.FS.  A
// source id maps to the file "<id>.json" at the FS root.  Stores are cheap
// stateless views; callers that want caching layer it on top.
type Store struct {
	fsys   fs.FS
	logger logging.Logger
}

// NewStore constructs a Store over fsys.
func NewStore(fsys fs.FS, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Store{fsys: fsys, logger: logger.Named("lexicon")}
}

// Load reads and parses the pattern source id.  A missing file is reported
// with ErrCodeLexiconSourceMissing so the category pipeline can distinguish
// absent data (empty result) from corrupt data.
func (s *Store) Load(id string) ([]string, error) {
	raw, err := fs.ReadFile(s.fsys, id+".json")
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeLexiconSourceMissing,
			"reading pattern source "+id)
	}
	patterns, err := ParseSource(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeLexiconParseFailed,
			"parsing pattern source "+id)
	}
	if len(patterns) == 0 {
		s.logger.Warn("pattern source is empty", logging.String("source", id))
	}
	return patterns, nil
}

// LoadTerms reads a curated term list (a JSON array of TermEntry).
func (s *Store) LoadTerms(id string) ([]TermEntry, error) {
	raw, err := fs.ReadFile(s.fsys, id+".json")
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeLexiconSourceMissing,
			"reading term source "+id)
	}
	var entries []TermEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeLexiconParseFailed,
			"parsing term source "+id)
	}
	return entries, nil
}

// Has reports whether the pattern source id exists without loading it.
func (s *Store) Has(id string) bool {
	_, err := fs.Stat(s.fsys, id+".json")
	return err == nil
}
