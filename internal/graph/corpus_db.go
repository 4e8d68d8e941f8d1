package graph

import (
	"fmt"

	"phrasegraph/internal/db"
)

// LoadCorpus reads words, transitions and sentences from the database
func LoadCorpus(d *db.DB) (*Corpus, error) {
	dbWords, err := d.AllWords()
	if err != nil {
		return nil, fmt.Errorf("loading words: %w", err)
	}
	dbTransitions, err := d.AllTransitions()
	if err != nil {
		return nil, fmt.Errorf("loading transitions: %w", err)
	}
	dbSentences, err := d.AllSentences()
	if err != nil {
		return nil, fmt.Errorf("loading sentences: %w", err)
	}

	words := make([]WordInfo, 0, len(dbWords))
	for _, w := range dbWords {
		if w.IsSentenceEnd {
			continue
		}
		words = append(words, WordInfo{ID: w.ID, Label: w.Word})
	}

	transitions := make([]TransitionInfo, 0, len(dbTransitions))
	for _, t := range dbTransitions {
		transitions = append(transitions, TransitionInfo{
			Source: t.SourceID,
			Target: t.TargetID,
			Weight: t.Weight,
		})
	}

	sentences := make([]string, 0, len(dbSentences))
	for _, s := range dbSentences {
		sentences = append(sentences, s.Text)
	}

	return NewCorpus(words, transitions, sentences), nil
}
