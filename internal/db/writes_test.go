package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a migrated SQLite database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := OpenDB(filepath.Join(t.TempDir(), "phrases.db"))
	require.NoError(t, err)
	require.NoError(t, d.Migrate())
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate_Idempotent(t *testing.T) {
	d := setupTestDB(t)
	require.NoError(t, d.Migrate())

	n, err := d.CountSentences()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestInsertSentences_IgnoresDuplicates(t *testing.T) {
	d := setupTestDB(t)

	n, err := d.InsertSentences("wiki", []string{"le chat dort", "le chat dort", "  ", "le chien mange"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = d.InsertSentences("", []string{"le chat dort"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	sentences, err := d.AllSentences()
	require.NoError(t, err)
	require.Len(t, sentences, 2)
	assert.Equal(t, "le chat dort", sentences[0].Text)
	require.NotNil(t, sentences[0].Source)
	assert.Equal(t, "wiki", *sentences[0].Source)
}

func TestRebuildVocabulary_CountsTransitions(t *testing.T) {
	d := setupTestDB(t)
	_, err := d.InsertSentences("test", []string{
		"le chat noir dort",
		"le chat noir mange",
		"voir le chat",
	})
	require.NoError(t, err)

	stats, err := d.RebuildVocabulary(RebuildOpts{Forbidden: []string{"voir"}, MinWords: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sentences)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 5, stats.Words)
	assert.Equal(t, 4, stats.Transitions)

	le, err := d.GetWord("le")
	require.NoError(t, err)
	chat, err := d.GetWord("chat")
	require.NoError(t, err)
	noir, err := d.GetWord("noir")
	require.NoError(t, err)

	w, err := d.TransitionWeight(le.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, w)

	w, err = d.TransitionWeight(chat.ID, noir.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, w)

	w, err = d.TransitionWeight(noir.ID, le.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, w)

	_, err = d.GetWord("voir")
	assert.Error(t, err)
}

func TestRebuildVocabulary_ReplacesPreviousRun(t *testing.T) {
	d := setupTestDB(t)
	_, err := d.InsertSentences("", []string{"un deux trois"})
	require.NoError(t, err)

	_, err = d.RebuildVocabulary(RebuildOpts{MinWords: 1})
	require.NoError(t, err)
	stats, err := d.RebuildVocabulary(RebuildOpts{MinWords: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Words)
	assert.Equal(t, 2, stats.Transitions)

	words, err := d.AllWords()
	require.NoError(t, err)
	assert.Len(t, words, 3)

	transitions, err := d.AllTransitions()
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	for _, tr := range transitions {
		assert.Equal(t, 1, tr.Weight)
	}
}

func TestRebuildVocabulary_LexicalIDs(t *testing.T) {
	d := setupTestDB(t)
	_, err := d.InsertSentences("", []string{"zèbre abeille mouton"})
	require.NoError(t, err)
	_, err = d.RebuildVocabulary(RebuildOpts{MinWords: 1})
	require.NoError(t, err)

	words, err := d.AllWords()
	require.NoError(t, err)
	got := make([]string, len(words))
	for i, w := range words {
		got[i] = w.Word
	}
	assert.Equal(t, []string{"abeille", "mouton", "zèbre"}, got)
}
