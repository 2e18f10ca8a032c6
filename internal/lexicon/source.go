// Package lexicon loads pattern data for the bias categories.  A pattern
// source is a nested JSON document (objects, lists, strings in any
// arrangement); loading collects every leaf string into a flat, deduplicated,
// deterministically ordered pattern set.  The nesting carries no meaning to
// the engine, it only lets curators group related patterns in the data files.
package lexicon

import (
	"encoding/json"
	"sort"

	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
)

// Flatten collects every leaf string of a decoded JSON value.  Traversal is
// iterative with an explicit stack; non-string scalars (numbers, booleans,
// null) are ignored rather than rejected so that annotated data files keep
// loading.
func Flatten(value any) []string {
	var out []string
	stack := []any{value}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := top.(type) {
		case string:
			out = append(out, v)
		case []any:
			// Reverse push keeps the document's own order in the output,
			// which makes failures reproduce deterministically.
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, v[keys[i]])
			}
		}
	}
	return out
}

// ParseSource decodes a pattern source document and returns its pattern set:
// all leaf strings, deduplicated, sorted.  The sort makes the set independent
// of document arrangement, so reorganising a data file never changes engine
// output.
func ParseSource(data []byte) ([]string, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeLexiconParseFailed,
			"decoding pattern source")
	}

	flat := Flatten(decoded)
	seen := make(map[string]struct{}, len(flat))
	out := make([]string, 0, len(flat))
	for _, p := range flat {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}
