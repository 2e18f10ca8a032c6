package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

func TestCharacterPositions_Overlaps(t *testing.T) {
	t.Parallel()

	a := analysis.CharacterPositions{Start: 5, End: 10}

	assert.True(t, a.Overlaps(analysis.CharacterPositions{Start: 8, End: 14}))
	assert.True(t, a.Overlaps(analysis.CharacterPositions{Start: 0, End: 20}))
	// Touching ranges count as overlapping.
	assert.True(t, a.Overlaps(analysis.CharacterPositions{Start: 10, End: 12}))
	assert.True(t, a.Overlaps(analysis.CharacterPositions{Start: 2, End: 5}))

	assert.False(t, a.Overlaps(analysis.CharacterPositions{Start: 11, End: 15}))
	assert.False(t, a.Overlaps(analysis.CharacterPositions{Start: 0, End: 4}))
}

func TestCharacterPositions_Len(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, analysis.CharacterPositions{Start: 5, End: 10}.Len())
	assert.Equal(t, 0, analysis.CharacterPositions{Start: 3, End: 3}.Len())
	assert.Equal(t, 0, analysis.CharacterPositions{Start: 7, End: 2}.Len())
}

func TestBiasIndicator_String(t *testing.T) {
	t.Parallel()

	ind := analysis.BiasIndicator{
		BiasIndicatorKey:   "emotionallyChargedAdjectives",
		DetectedPhrase:     "brutal",
		CharacterPositions: analysis.CharacterPositions{Start: 4, End: 10},
	}
	assert.Equal(t, `emotionallyChargedAdjectives "brutal" [4:10]`, ind.String())
}

func TestToken_Lemma(t *testing.T) {
	t.Parallel()

	tok := analysis.Token{Surface: "Houses", Lemmas: []string{"house", "hous"}}
	assert.Equal(t, "house", tok.Lemma())
	assert.True(t, tok.HasLemma("hous"))
	assert.False(t, tok.HasLemma("houses"))

	empty := analysis.Token{Surface: "Unseen"}
	assert.Equal(t, "unseen", empty.Lemma())
}

func TestCandidate_Positions(t *testing.T) {
	t.Parallel()

	c := analysis.Candidate{Phrase: "angry mobs", Start: 12, End: 22}
	assert.Equal(t, analysis.CharacterPositions{Start: 12, End: 22}, c.Positions())
}

func TestAnalyseRequest_Validate(t *testing.T) {
	t.Parallel()

	req := &analysis.AnalyseRequest{Text: "some text"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "en", req.Language)

	czech := &analysis.AnalyseRequest{Text: "nějaký text", Language: "cs"}
	require.NoError(t, czech.Validate())
	assert.Equal(t, "cs", czech.Language)

	assert.Error(t, (&analysis.AnalyseRequest{Text: "   "}).Validate())
}
