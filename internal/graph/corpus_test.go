package graph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phrasegraph/internal/db"
)

func TestCorpus_LastWordIDs(t *testing.T) {
	c := NewCorpus(vocab("le", "chat", "dort"), nil, []string{"Le chat dort ", "le chat miaule", ""})
	assert.Equal(t, []int64{3, 0, 0}, c.LastWordIDs())
}

func TestCorpus_TokenRunsAndTrigrams(t *testing.T) {
	c := NewCorpus(vocab("le", "chat", "noir", "dort"), nil, []string{
		"le chat noir dort",
		"le chat blanc dort",
		"le chat noir",
	})
	assert.Equal(t, [][]int64{{1, 2, 3, 4}, {1, 2}, {4}, {1, 2, 3}}, c.TokenRuns())

	tri := c.Trigrams()
	assert.Equal(t, 2, tri[[3]int64{1, 2, 3}])
	assert.Equal(t, 1, tri[[3]int64{2, 3, 4}])
	assert.Len(t, tri, 2)
}

func TestTransitionTrigrams(t *testing.T) {
	tg := BuildTransitionGraph(vocab("a", "b", "c"), []TransitionInfo{
		{Source: 1, Target: 2, Weight: 3},
		{Source: 2, Target: 3, Weight: 1},
		{Source: 2, Target: 1, Weight: 1},
	}, TransitionConfig{})
	tri := tg.TransitionTrigrams()
	assert.Equal(t, 1, tri[[3]int64{1, 2, 3}])
	assert.Equal(t, 1, tri[[3]int64{1, 2, 1}])
	assert.Equal(t, 1, tri[[3]int64{2, 1, 2}])
	assert.Len(t, tri, 3)
}

func TestCorpus_TransitionGraphWithEndMarkers(t *testing.T) {
	c := NewCorpus(vocab("le", "chat", "dort"), []TransitionInfo{
		{Source: 1, Target: 2, Weight: 2},
		{Source: 2, Target: 3, Weight: 2},
	}, []string{"le chat dort", "le chat dort"})
	tg := c.TransitionGraph(TransitionConfig{EndMarkers: 5})

	require.Len(t, tg.EndMarkers(), 5)
	w, ok := tg.Weight(3, 4)
	require.True(t, ok)
	assert.Equal(t, 1, w)
	w, ok = tg.Weight(3, 5)
	require.True(t, ok)
	assert.Equal(t, 1, w)
}

func TestCorpus_EndMarkersSkipFilteredWordIDs(t *testing.T) {
	// z (id 4) is the highest id but loses the TopN cut to a.
	c := NewCorpus(vocab("a", "b", "c", "z"), []TransitionInfo{
		{Source: 1, Target: 2, Weight: 3},
		{Source: 2, Target: 4, Weight: 3},
		{Source: 3, Target: 2, Weight: 5},
	}, []string{"a b z", "a b z", "a b z", "c b", "c b", "c b", "c b", "c b"})
	tg := c.TransitionGraph(TransitionConfig{TopN: 3, EndMarkers: 1})

	require.Nil(t, tg.Node(4), "z is filtered out")
	require.Equal(t, []int64{5}, tg.EndMarkers())
	w, ok := tg.Weight(2, 5)
	require.True(t, ok)
	assert.Equal(t, 5, w)

	tri := c.Trigrams()
	assert.Equal(t, 3, tri[[3]int64{1, 2, 4}])
	assert.Zero(t, tri[[3]int64{1, 2, 5}], "no observed trigram ends on the marker")
}

func TestLoadCorpus(t *testing.T) {
	d, err := db.OpenDB(filepath.Join(t.TempDir(), "phrases.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.Migrate())

	_, err = d.InsertSentences("test", []string{"le chat noir dort", "le chat noir mange"})
	require.NoError(t, err)
	_, err = d.RebuildVocabulary(db.RebuildOpts{MinWords: 2})
	require.NoError(t, err)

	c, err := LoadCorpus(d)
	require.NoError(t, err)
	assert.Len(t, c.Words, 5)
	assert.Len(t, c.Transitions, 4)
	assert.Equal(t, []string{"le chat noir dort", "le chat noir mange"}, c.Sentences)

	tg := c.TransitionGraph(TransitionConfig{MinUsage: 1})
	le, ok := tg.Lookup("le")
	require.True(t, ok)
	chat, ok := tg.Lookup("chat")
	require.True(t, ok)
	w, ok := tg.Weight(le, chat)
	require.True(t, ok)
	assert.Equal(t, 2, w)
}
