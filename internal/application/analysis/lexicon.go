package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/internal/lexicon"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// MatchLexiconTerms locates curated lexicon entries in text and attaches
// their definitions.  Each entry's word pattern is matched the same way the
// raw strategy matches phrases: word-boundary wrapped, alternation grouped,
// case-insensitive.  Results are sorted by end position, matching the order
// readers encounter the closing edge of each term.
func MatchLexiconTerms(text string, entries []lexicon.TermEntry, logger logging.Logger) []analysis.LexiconTerm {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	var out []analysis.LexiconTerm
	for _, entry := range entries {
		expr := `\b` + entry.Word + `\b`
		if strings.Contains(entry.Word, "|") {
			expr = `\b(?:` + entry.Word + `)\b`
		}
		re, err := regexp.Compile(`(?i)` + expr)
		if err != nil {
			logger.Warn("skipping lexicon entry that failed to compile",
				logging.String("word", entry.Word), logging.Err(err))
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			// The term is reported exactly as it appears in the text.
			out = append(out, analysis.LexiconTerm{
				Word:         text[loc[0]:loc[1]],
				Definition:   entry.Definition,
				UsageExample: entry.UsageExample,
				CharacterPositions: analysis.CharacterPositions{
					Start: loc[0],
					End:   loc[1],
				},
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CharacterPositions.End < out[j].CharacterPositions.End
	})
	return out
}
