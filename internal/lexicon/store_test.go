package lexicon_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/BiasLens-Intelligence/internal/lexicon"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
)

func TestStore_Load(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"cat_en.json": &fstest.MapFile{Data: []byte(`{"g": ["beta", "alpha"]}`)},
	}
	s := lexicon.NewStore(fsys, nil)

	patterns, err := s.Load("cat_en")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, patterns)
}

func TestStore_Load_MissingSource(t *testing.T) {
	t.Parallel()
	s := lexicon.NewStore(fstest.MapFS{}, nil)
	_, err := s.Load("absent")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCodeLexiconSourceMissing, pkgerrors.GetCode(err))
}

func TestStore_Load_CorruptSource(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"bad.json": &fstest.MapFile{Data: []byte(`not json`)},
	}
	s := lexicon.NewStore(fsys, nil)
	_, err := s.Load("bad")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCodeLexiconParseFailed, pkgerrors.GetCode(err))
}

func TestStore_Has(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"present.json": &fstest.MapFile{Data: []byte(`[]`)},
	}
	s := lexicon.NewStore(fsys, nil)
	assert.True(t, s.Has("present"))
	assert.False(t, s.Has("missing"))
}

func TestStore_LoadTerms(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"terms.json": &fstest.MapFile{Data: []byte(
			`[{"word": "clickbait", "definition": "d", "usage_example": "u"}]`)},
	}
	s := lexicon.NewStore(fsys, nil)

	terms, err := s.LoadTerms("terms")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "clickbait", terms[0].Word)
	assert.Equal(t, "d", terms[0].Definition)
	assert.Equal(t, "u", terms[0].UsageExample)
}

func TestNewDefaultStore_EmbeddedData(t *testing.T) {
	t.Parallel()
	s := lexicon.NewDefaultStore(nil, nil)

	patterns, err := s.Load("emotionallyChargedAdjectives_en")
	require.NoError(t, err)
	assert.Contains(t, patterns, "brutal")

	terms, err := s.LoadTerms("lexicon_terms_en")
	require.NoError(t, err)
	assert.NotEmpty(t, terms)
}

func TestNewDefaultStore_OverlayShadowsEmbedded(t *testing.T) {
	t.Parallel()
	overlay := fstest.MapFS{
		"emotionallyChargedAdjectives_en.json": &fstest.MapFile{
			Data: []byte(`["overlay-only"]`)},
	}
	s := lexicon.NewDefaultStore(overlay, nil)

	patterns, err := s.Load("emotionallyChargedAdjectives_en")
	require.NoError(t, err)
	assert.Equal(t, []string{"overlay-only"}, patterns)

	// Ids the overlay does not define fall through to the embedded data.
	patterns, err = s.Load("mitigators_en")
	require.NoError(t, err)
	assert.Contains(t, patterns, "allegedly")
}
