package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// Surface category patterns are compiled once.  They deliberately bypass the
// matcher's case-insensitive compilation: capitalisation detection is the one
// place where letter case is the signal.
var (
	capitalsRun     = regexp.MustCompile(`\p{Lu}+`)
	ellipsesRun     = regexp.MustCompile(`\.\.\.`)
	punctuationRuns = regexp.MustCompile(`[!?]{2,}`)
)

// minCapitalsSpan is the minimum character length of a reported all-caps
// span, counted over the whole span including interior whitespace.
const minCapitalsSpan = 5

// matchSurface evaluates a built-in surface category against text.  Matches
// of one pattern over disjoint runs never overlap, so no resolution pass is
// needed.
func matchSurface(kind SurfaceKind, text string) []analysis.Candidate {
	var re *regexp.Regexp
	switch kind {
	case SurfaceCapitalisation:
		return matchCapitals(text)
	case SurfaceEllipses:
		re = ellipsesRun
	case SurfacePunctuationRuns:
		re = punctuationRuns
	default:
		return nil
	}

	var out []analysis.Candidate
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, analysis.Candidate{
			Phrase:  strings.ToLower(text[loc[0]:loc[1]]),
			Pattern: re.String(),
			Start:   loc[0],
			End:     loc[1],
		})
	}
	return out
}

// matchCapitals reports all-caps spans: whole uppercase words, joined across
// whitespace, with at least minCapitalsSpan characters in the joined span.
// "BREAKING NEWS" is one indicator; the leading capital of a mixed-case word
// never starts or extends a span.
func matchCapitals(text string) []analysis.Candidate {
	var spans [][2]int
	for _, loc := range capitalsRun.FindAllStringIndex(text, -1) {
		if !wholeWord(text, loc[0], loc[1]) {
			continue
		}
		if n := len(spans); n > 0 && onlySpace(text[spans[n-1][1]:loc[0]]) {
			spans[n-1][1] = loc[1]
			continue
		}
		spans = append(spans, [2]int{loc[0], loc[1]})
	}

	var out []analysis.Candidate
	for _, span := range spans {
		phrase := text[span[0]:span[1]]
		if utf8.RuneCountInString(phrase) < minCapitalsSpan {
			continue
		}
		out = append(out, analysis.Candidate{
			Phrase:  strings.ToLower(phrase),
			Pattern: capitalsRun.String(),
			Start:   span[0],
			End:     span[1],
		})
	}
	return out
}

// wholeWord reports whether text[start:end] is bounded by non-alphanumeric
// runes, so the uppercase run is a complete word rather than the head of a
// mixed-case one.
func wholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func onlySpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
