package matching

import (
	"sort"
	"strings"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// sortByWordCount orders patterns by word count descending so that multi-word
// matches are preferred over single-word matches that are subsets of them.
// The sort is stable: patterns with equal word counts keep the pattern set's
// deterministic order, which keeps the whole pipeline order-stable.
func sortByWordCount(patterns []string) []string {
	ordered := make([]string, len(patterns))
	copy(ordered, patterns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(strings.Fields(ordered[i])) > len(strings.Fields(ordered[j]))
	})
	return ordered
}

// FindLemmaPhrases implements the single-lemma strategy: each pattern is
// split into words and every contiguous token window of that width is tested
// for an exact lemma-sequence match against the pattern, using each token's
// primary lemma.  The span runs from the first token's start to the last
// token's end.  A newly found match is discarded if it character-overlaps any
// match already accepted for this call: because patterns are tried longest
// first, a dictionary that contains both "cost optimisation" and "cost"
// reports only the longer phrase.
func FindLemmaPhrases(text string, tokens []analysis.Token, patterns []string) []analysis.Candidate {
	var accepted []analysis.Candidate
	for _, c := range exactLemmaCandidates(text, tokens, patterns) {
		overlaps := false
		for _, a := range accepted {
			if spansOverlap(c, a) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// exactLemmaCandidates collects every window whose primary lemma sequence
// equals the pattern's word sequence, without overlap filtering.  The hybrid
// matcher consumes the raw list; FindLemmaPhrases applies its own filter.
func exactLemmaCandidates(text string, tokens []analysis.Token, patterns []string) []analysis.Candidate {
	var out []analysis.Candidate
	for _, pattern := range sortByWordCount(patterns) {
		parts := strings.Fields(strings.ToLower(pattern))
		if len(parts) == 0 {
			continue
		}
		for i := 0; i+len(parts) <= len(tokens); i++ {
			match := true
			for j, want := range parts {
				if tokens[i+j].Lemma() != want {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			start := tokens[i].Start
			end := tokens[i+len(parts)-1].End
			out = append(out, analysis.Candidate{
				Phrase:  strings.ToLower(text[start:end]),
				Pattern: pattern,
				Start:   start,
				End:     end,
			})
		}
	}
	return out
}

// FindAmbiguousLemmaPhrases implements the ambiguous-lemma strategy for
// backends whose tokens carry several candidate lemmas.  A window matches a
// pattern when, for every position, the pattern's word is a member of the
// token's lemma set rather than necessarily its primary lemma.  Matches are
// deduplicated by (start, end) so that multiple explanatory lemma
// combinations at the same position keep only one record; patterns are tried
// longest first, so the surviving record is the most specific one.
func FindAmbiguousLemmaPhrases(text string, tokens []analysis.Token, patterns []string) []analysis.Candidate {
	var out []analysis.Candidate
	seen := make(map[[2]int]struct{})

	for _, pattern := range sortByWordCount(patterns) {
		parts := strings.Fields(strings.ToLower(pattern))
		if len(parts) == 0 {
			continue
		}
		for i := 0; i+len(parts) <= len(tokens); i++ {
			match := true
			for j, want := range parts {
				if !tokens[i+j].HasLemma(want) {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			start := tokens[i].Start
			end := tokens[i+len(parts)-1].End
			key := [2]int{start, end}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, analysis.Candidate{
				Phrase:  strings.ToLower(text[start:end]),
				Pattern: pattern,
				Start:   start,
				End:     end,
			})
		}
	}
	return out
}
