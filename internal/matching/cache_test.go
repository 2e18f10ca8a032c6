package matching_test

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/BiasLens-Intelligence/internal/matching"
	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

// fakeAnalyzer tokenizes on whitespace using the configured lemma map and
// counts invocations.  A non-nil err makes every call fail.
type fakeAnalyzer struct {
	lemmas map[string][]string
	err    error
	calls  atomic.Int64
}

func (f *fakeAnalyzer) Analyze(text string) ([]analysis.Token, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return tokenize(text, f.lemmas), nil
}

func TestCache_GetOrCompute_MemoizesPerText(t *testing.T) {
	t.Parallel()
	fa := &fakeAnalyzer{}
	c := matching.NewCache(fa)

	first, err := c.GetOrCompute("one two")
	require.NoError(t, err)
	second, err := c.GetOrCompute("one two")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), fa.calls.Load())
	assert.Equal(t, 1, c.Len())

	_, err = c.GetOrCompute("three")
	require.NoError(t, err)
	assert.Equal(t, int64(2), fa.calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestCache_GetOrCompute_ErrorsNotCached(t *testing.T) {
	t.Parallel()
	fa := &fakeAnalyzer{err: errors.New("backend down")}
	c := matching.NewCache(fa)

	_, err := c.GetOrCompute("some text")
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	// A recovered backend serves the same text on the next call.
	fa.err = nil
	tokens, err := c.GetOrCompute("some text")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
	assert.Equal(t, int64(2), fa.calls.Load())
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()
	fa := &fakeAnalyzer{}
	c := matching.NewCache(fa)

	_, err := c.GetOrCompute("alpha")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	_, err = c.GetOrCompute("alpha")
	require.NoError(t, err)
	assert.Equal(t, int64(2), fa.calls.Load())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	fa := &fakeAnalyzer{}
	c := matching.NewCache(fa)
	texts := []string{"a b c", "d e", "f", "a b c", "d e"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		for _, text := range texts {
			wg.Add(1)
			go func(text string) {
				defer wg.Done()
				tokens, err := c.GetOrCompute(text)
				assert.NoError(t, err)
				assert.Len(t, tokens, len(strings.Fields(text)))
			}(text)
		}
	}
	wg.Wait()
	assert.Equal(t, 3, c.Len())
}
