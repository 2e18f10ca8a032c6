// Package matching implements the multi-strategy phrase matching and
// overlap-resolution engine of the BiasLens platform.  Given a text, a set of
// target phrases or patterns, and optionally a morphologically annotated token
// sequence, it produces candidate bias-indicator spans and reduces them to a
// non-overlapping, deterministically ordered result.
//
// Offset convention: every span in this package is a 0-based byte offset into
// the original UTF-8 text with an exclusive end.  Backends and matchers that
// would naturally compute inclusive ends convert before their results leave
// the function that produced them; mixing conventions at merge points is the
// single most likely source of off-by-one defects in this kind of engine.
package matching

import (
	"sort"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// spansOverlap reports whether two candidate ranges intersect.  The test is
// inclusive on both ends: spans that merely touch are rejected together.
func spansOverlap(a, b analysis.Candidate) bool {
	return a.End >= b.Start && a.Start <= b.End
}

// Resolve reduces an unordered candidate list to the final non-overlapping
// result using the shared greedy policy:
//
//  1. Sort by start offset ascending, ties broken by phrase length descending
//     so longer matches win at the same position.
//  2. Accept a candidate iff its range does not overlap any already-accepted
//     range.
//  3. Re-sort the accepted set by start offset for output.
//
// The greedy rule is a local, not global, optimum: it does not maximise the
// number of non-overlapping matches, only guarantees a deterministic,
// longest-match-preferring resolution.  That trade-off is deliberate.
func Resolve(candidates []analysis.Candidate) []analysis.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	ordered := make([]analysis.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return len(ordered[i].Phrase) > len(ordered[j].Phrase)
	})

	accepted := make([]analysis.Candidate, 0, len(ordered))
	for _, c := range ordered {
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

	// Step 1's ordering already yields ascending starts, but strategy-specific
	// accumulation orders feed this function too, so the output sort stays.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

// VerifyNonOverlapping reports whether every pair of candidates in the
// resolved list satisfies the non-overlap invariant.  It exists for tests and
// for the pipeline's debug assertions; Resolve always returns a list for
// which this holds.
func VerifyNonOverlapping(resolved []analysis.Candidate) bool {
	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			if spansOverlap(resolved[i], resolved[j]) {
				return false
			}
		}
	}
	return true
}
