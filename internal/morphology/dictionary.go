package morphology

import (
	"encoding/json"
	"io/fs"
	"regexp"
	"strings"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// tokenPattern splits text into word runs (letters, digits, underscore) and
// single non-space punctuation marks, Unicode-aware.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}\s]`)

// lemmaList accepts both JSON shapes a dictionary entry may use: a single
// string for the common unambiguous case and an array for ambiguous surfaces.
type lemmaList []string

func (l *lemmaList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = lemmaList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = lemmaList(many)
	return nil
}

// DictionaryBackend implements Backend with a static surface-to-lemmas
// dictionary.  It trades coverage for zero runtime dependencies: surfaces the
// dictionary does not know keep their lowercased form as the sole lemma, so
// matching degrades to surface matching rather than failing.
type DictionaryBackend struct {
	name    string
	entries map[string][]string
	logger  logging.Logger
}

// NewDictionaryBackend loads the dictionary at path within fsys.  The file is
// a single JSON object mapping lowercase surface forms to either one lemma or
// a list of candidate lemmas.
func NewDictionaryBackend(name string, fsys fs.FS, path string, logger logging.Logger) (*DictionaryBackend, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeBackendInitFailed,
			"reading lemma dictionary "+path)
	}

	var parsed map[string]lemmaList
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDictionaryInvalid,
			"parsing lemma dictionary "+path)
	}

	entries := make(map[string][]string, len(parsed))
	for surface, lemmas := range parsed {
		if len(lemmas) == 0 {
			continue
		}
		lowered := make([]string, len(lemmas))
		for i, lemma := range lemmas {
			lowered[i] = strings.ToLower(lemma)
		}
		entries[strings.ToLower(surface)] = lowered
	}

	logger.Debug("lemma dictionary loaded",
		logging.String("backend", name),
		logging.String("path", path),
		logging.Int("entries", len(entries)))

	return &DictionaryBackend{name: name, entries: entries, logger: logger}, nil
}

// Name implements Backend.
func (d *DictionaryBackend) Name() string { return d.name }

// Analyze implements Backend.  It never fails: dictionary lookup has no error
// modes once loading succeeded.
func (d *DictionaryBackend) Analyze(text string) ([]analysis.Token, error) {
	locs := tokenPattern.FindAllStringIndex(text, -1)
	tokens := make([]analysis.Token, 0, len(locs))
	for _, loc := range locs {
		surface := text[loc[0]:loc[1]]
		lemmas, ok := d.entries[strings.ToLower(surface)]
		if !ok {
			lemmas = []string{strings.ToLower(surface)}
		}
		tokens = append(tokens, analysis.Token{
			Surface: surface,
			Lemmas:  lemmas,
			Start:   loc[0],
			End:     loc[1],
		})
	}
	return tokens, nil
}

// Close implements Backend.  The dictionary holds no external resources.
func (d *DictionaryBackend) Close() error { return nil }
