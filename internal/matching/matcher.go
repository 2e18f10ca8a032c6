package matching

import (
	"regexp"
	"sort"
	"strings"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Matcher applies pattern sets to text using the surface-level strategies
// (raw word-boundary regex and enhanced literal regex).  It is stateless and
// safe for concurrent use; the logger is the only dependency.
type Matcher struct {
	logger logging.Logger
}

// NewMatcher constructs a Matcher.  A nil logger falls back to the nop logger.
func NewMatcher(logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Matcher{logger: logger.Named("matcher")}
}

// FindPhrases implements the raw-regex strategy: each pattern is wrapped in
// word boundaries (alternation patterns get a non-capturing group first) and
// scanned case-insensitively.  One candidate is emitted per match, dedupli-
// cated by exact (start, end) pair across patterns.  Candidates are returned
// unresolved; the caller runs the shared overlap resolver.
func (m *Matcher) FindPhrases(text string, patterns []string) []analysis.Candidate {
	var out []analysis.Candidate
	seen := make(map[[2]int]struct{})

	for _, pattern := range patterns {
		expr := `\b` + pattern + `\b`
		if strings.Contains(pattern, "|") {
			expr = `\b(?:` + pattern + `)\b`
		}
		re, err := regexp.Compile(`(?i)` + expr)
		if err != nil {
			m.logger.Warn("skipping pattern that failed to compile",
				logging.String("pattern", pattern), logging.Err(err))
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			key := [2]int{loc[0], loc[1]}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, analysis.Candidate{
				Phrase:  strings.ToLower(text[loc[0]:loc[1]]),
				Pattern: pattern,
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}
	return out
}

// FindPhrasesEnhanced implements the enhanced-regex strategy for pattern sets
// whose entries are full regular expressions that already encode their own
// boundaries and special characters.  Patterns are tried longest-first so
// longer matches take priority, malformed patterns are skipped with a
// warning, and longest-match-wins overlap filtering is applied before
// returning: this variant's patterns are allowed to overlap by construction,
// so it performs its own resolution and the caller must not resolve again.
func (m *Matcher) FindPhrasesEnhanced(text string, patterns []string) []analysis.Candidate {
	return Resolve(m.literalRegexCandidates(text, patterns))
}

// literalRegexCandidates collects the unfiltered match set for the enhanced
// strategy.  The hybrid matcher merges this raw list with lemma candidates
// before resolving, which is why collection and filtering are split.
func (m *Matcher) literalRegexCandidates(text string, patterns []string) []analysis.Candidate {
	ordered := make([]string, len(patterns))
	copy(ordered, patterns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	var out []analysis.Candidate
	for _, pattern := range ordered {
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			m.logger.Warn("skipping pattern that failed to compile",
				logging.String("pattern", pattern), logging.Err(err))
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, analysis.Candidate{
				Phrase:  strings.ToLower(text[loc[0]:loc[1]]),
				Pattern: pattern,
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}
	return out
}
