package morphology_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/BiasLens-Intelligence/internal/morphology"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
)

func dictFS(content string) fstest.MapFS {
	return fstest.MapFS{
		"dict.json": &fstest.MapFile{Data: []byte(content)},
	}
}

func TestNewDictionaryBackend_LoadsStringAndArrayEntries(t *testing.T) {
	t.Parallel()
	b, err := morphology.NewDictionaryBackend("dictionary-test",
		dictFS(`{"zásahy": "zásah", "voita": ["voi", "voittaa"]}`), "dict.json", nil)
	require.NoError(t, err)
	assert.Equal(t, "dictionary-test", b.Name())

	tokens, err := b.Analyze("voita zásahy")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, []string{"voi", "voittaa"}, tokens[0].Lemmas)
	assert.Equal(t, []string{"zásah"}, tokens[1].Lemmas)
}

func TestNewDictionaryBackend_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := morphology.NewDictionaryBackend("d", fstest.MapFS{}, "nope.json", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCodeBackendInitFailed, pkgerrors.GetCode(err))
}

func TestNewDictionaryBackend_InvalidJSON(t *testing.T) {
	t.Parallel()
	_, err := morphology.NewDictionaryBackend("d", dictFS(`{"a": 42}`), "dict.json", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCodeDictionaryInvalid, pkgerrors.GetCode(err))
}

func TestDictionaryBackend_Analyze_Offsets(t *testing.T) {
	t.Parallel()
	b, err := morphology.NewDictionaryBackend("d", dictFS(`{}`), "dict.json", nil)
	require.NoError(t, err)

	text := "Davy se shromáždily."
	tokens, err := b.Analyze(text)
	require.NoError(t, err)
	require.Len(t, tokens, 4) // Davy, se, shromáždily, .

	for _, tok := range tokens {
		assert.Equal(t, tok.Surface, text[tok.Start:tok.End])
		require.NotEmpty(t, tok.Lemmas)
	}
	assert.Equal(t, "Davy", tokens[0].Surface)
	assert.Equal(t, "davy", tokens[0].Lemma())
	assert.Equal(t, ".", tokens[3].Surface)
}

func TestDictionaryBackend_Analyze_UnknownSurfaceFallsBack(t *testing.T) {
	t.Parallel()
	b, err := morphology.NewDictionaryBackend("d", dictFS(`{"známé": "známý"}`), "dict.json", nil)
	require.NoError(t, err)

	tokens, err := b.Analyze("Známé a Neznámé")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "známý", tokens[0].Lemma())
	assert.Equal(t, "neznámé", tokens[2].Lemma())
}

func TestDictionaryBackend_Analyze_PunctuationIsSingleTokens(t *testing.T) {
	t.Parallel()
	b, err := morphology.NewDictionaryBackend("d", dictFS(`{}`), "dict.json", nil)
	require.NoError(t, err)

	tokens, err := b.Analyze("ano?! ne")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "?", tokens[1].Surface)
	assert.Equal(t, "!", tokens[2].Surface)
}

func TestDictionaryBackend_Analyze_EmptyText(t *testing.T) {
	t.Parallel()
	b, err := morphology.NewDictionaryBackend("d", dictFS(`{}`), "dict.json", nil)
	require.NoError(t, err)

	tokens, err := b.Analyze("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.NoError(t, b.Close())
}
