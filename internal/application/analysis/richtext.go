package analysis

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// formattingTags are the HTML elements whose content counts as emphasized.
var formattingTags = map[string]struct{}{
	"b": {}, "strong": {},
	"i": {}, "em": {},
	"u": {},
}

// italicsBoldfaceKey is the category key for formatting-based emphasis.
const italicsBoldfaceKey = "italicsBoldface"

// MatchFormatting tokenizes the rich-text variant of the input and reports
// every bold, italic or underlined text run.  Offsets are byte offsets into
// the plain text extracted from the markup, not into the markup itself, so
// they line up with the other categories when the caller supplied matching
// plain and rich variants.  Malformed markup never fails: the tokenizer
// recovers the way browsers do.
func MatchFormatting(richText string) []analysis.BiasIndicator {
	if strings.TrimSpace(richText) == "" {
		return nil
	}

	tokenizer := html.NewTokenizer(strings.NewReader(richText))

	var (
		out       []analysis.BiasIndicator
		plain     strings.Builder
		depth     int // nesting depth of formatting elements
		spanStart = -1
	)

	closeSpan := func() {
		if spanStart < 0 {
			return
		}
		text := plain.String()[spanStart:]
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			// Trim offsets to the non-whitespace core of the span.
			lead := strings.Index(text, trimmed)
			out = append(out, analysis.BiasIndicator{
				BiasIndicatorKey: italicsBoldfaceKey,
				DetectedPhrase:   strings.ToLower(trimmed),
				CharacterPositions: analysis.CharacterPositions{
					Start: spanStart + lead,
					End:   spanStart + lead + len(trimmed),
				},
			})
		}
		spanStart = -1
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			closeSpan()
			return out

		case html.TextToken:
			plain.Write(tokenizer.Text())

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if _, ok := formattingTags[string(name)]; ok {
				if depth == 0 {
					spanStart = plain.Len()
				}
				depth++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if _, ok := formattingTags[string(name)]; ok && depth > 0 {
				depth--
				if depth == 0 {
					closeSpan()
				}
			}
		}
	}
}
