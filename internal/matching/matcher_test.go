package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/BiasLens-Intelligence/internal/matching"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

func TestMatcher_FindPhrases_SingleWord(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	text := "The brutal crackdown shocked observers."
	out := m.FindPhrases(text, []string{"brutal"})
	require.Len(t, out, 1)
	assert.Equal(t, "brutal", out[0].Phrase)
	assert.Equal(t, 4, out[0].Start)
	assert.Equal(t, 10, out[0].End)
	assert.Equal(t, "brutal", text[out[0].Start:out[0].End])
}

func TestMatcher_FindPhrases_CaseInsensitiveLowercasedPhrase(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	out := m.FindPhrases("BRUTAL tactics, Brutal results.", []string{"brutal"})
	require.Len(t, out, 2)
	assert.Equal(t, "brutal", out[0].Phrase)
	assert.Equal(t, "brutal", out[1].Phrase)
}

func TestMatcher_FindPhrases_WordBoundary(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	// "war" must not match inside "warzone".
	out := m.FindPhrases("Reporters entered the warzone.", []string{"war"})
	assert.Empty(t, out)

	out = m.FindPhrases("The war in the warzone.", []string{"war"})
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Start)
}

func TestMatcher_FindPhrases_AlternationGetsGroup(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	// Without the non-capturing group the boundary anchors would bind to the
	// first and last alternative only.
	text := "They rioted before the riots, rioting all night."
	out := m.FindPhrases(text, []string{"riots|rioted|rioting"})
	require.Len(t, out, 3)
	assert.Equal(t, "rioted", out[0].Phrase)
	assert.Equal(t, "riots", out[1].Phrase)
	assert.Equal(t, "rioting", out[2].Phrase)
}

func TestMatcher_FindPhrases_MultiWordPhrase(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	text := "An angry mobs gathered; the angry mob dispersed."
	out := m.FindPhrases(text, []string{"angry mobs?"})
	require.Len(t, out, 2)
	assert.Equal(t, "angry mobs", out[0].Phrase)
	assert.Equal(t, "angry mob", out[1].Phrase)
}

func TestMatcher_FindPhrases_DedupAcrossPatterns(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	// Two patterns matching the same span yield one candidate.
	out := m.FindPhrases("a brutal act", []string{"brutal", "brutal|savage"})
	require.Len(t, out, 1)
	assert.Equal(t, "brutal", out[0].Phrase)
}

func TestMatcher_FindPhrases_MalformedPatternSkipped(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	out := m.FindPhrases("a brutal act", []string{"[unclosed", "brutal"})
	require.Len(t, out, 1)
	assert.Equal(t, "brutal", out[0].Phrase)
}

func TestMatcher_FindPhrases_NoMatches(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	assert.Empty(t, m.FindPhrases("a calm and factual report", []string{"brutal", "savage"}))
	assert.Empty(t, m.FindPhrases("", []string{"brutal"}))
	assert.Empty(t, m.FindPhrases("some text", nil))
}

func TestMatcher_FindPhrasesEnhanced_LongestFirstResolution(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	text := "the so-called peace process stalled"
	out := m.FindPhrasesEnhanced(text, []string{
		`\bso-called peace process\b`,
		`\bso-called\b`,
		`\bpeace\b`,
	})
	require.Len(t, out, 1)
	assert.Equal(t, "so-called peace process", out[0].Phrase)
	assert.True(t, matching.VerifyNonOverlapping(out))
}

func TestMatcher_FindPhrasesEnhanced_DisjointMatchesKept(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	text := "Allegedly the regime acted; reportedly it denied everything."
	out := m.FindPhrasesEnhanced(text, []string{`\ballegedly\b`, `\breportedly\b`})
	require.Len(t, out, 2)
	assert.Equal(t, "allegedly", out[0].Phrase)
	assert.Equal(t, "reportedly", out[1].Phrase)
	assert.Less(t, out[0].Start, out[1].Start)
}

func TestMatcher_FindPhrasesEnhanced_MalformedPatternSkipped(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	out := m.FindPhrasesEnhanced("allegedly so", []string{`(?P<broken`, `\ballegedly\b`})
	require.Len(t, out, 1)
	assert.Equal(t, "allegedly", out[0].Phrase)
}

func TestMatcher_CandidatePositionsRoundTrip(t *testing.T) {
	t.Parallel()
	m := matching.NewMatcher(nil)
	text := "Extremists stormed the building."
	out := m.FindPhrases(text, []string{"extremists"})
	require.Len(t, out, 1)
	pos := out[0].Positions()
	assert.Equal(t, analysis.CharacterPositions{Start: 0, End: 10}, pos)
}
