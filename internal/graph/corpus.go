package graph

import "strings"

// WordInfo is a lightweight word representation decoupled from DB types
type WordInfo struct {
	ID    int64
	Label string
}

// TransitionInfo is a lightweight transition representation
type TransitionInfo struct {
	Source int64
	Target int64
	Weight int
}

// Corpus holds the raw statistics every graph builder reads from
type Corpus struct {
	Words       []WordInfo
	Transitions []TransitionInfo
	Sentences   []string // lowercase, whitespace separated
}

// NewCorpus normalizes sentences to trimmed lowercase text
func NewCorpus(words []WordInfo, transitions []TransitionInfo, sentences []string) *Corpus {
	norm := make([]string, 0, len(sentences))
	for _, s := range sentences {
		norm = append(norm, strings.ToLower(strings.TrimSpace(s)))
	}
	return &Corpus{Words: words, Transitions: transitions, Sentences: norm}
}

// LabelIndex maps surface forms to word ids
func (c *Corpus) LabelIndex() map[string]int64 {
	idx := make(map[string]int64, len(c.Words))
	for _, w := range c.Words {
		idx[strings.ToLower(w.Label)] = w.ID
	}
	return idx
}

// LastWordIDs returns, for every sentence, the id of its last token.
// Entries are 0 when the sentence is empty or its last token is unknown.
func (c *Corpus) LastWordIDs() []int64 {
	idx := c.LabelIndex()
	ids := make([]int64, len(c.Sentences))
	for i, s := range c.Sentences {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		ids[i] = idx[fields[len(fields)-1]]
	}
	return ids
}

// TokenRuns splits every sentence into maximal runs of consecutive known words.
func (c *Corpus) TokenRuns() [][]int64 {
	idx := c.LabelIndex()
	var runs [][]int64
	for _, s := range c.Sentences {
		var run []int64
		for _, tok := range strings.Fields(s) {
			id, ok := idx[tok]
			if !ok {
				if len(run) > 0 {
					runs = append(runs, run)
				}
				run = nil
				continue
			}
			run = append(run, id)
		}
		if len(run) > 0 {
			runs = append(runs, run)
		}
	}
	return runs
}

// EndLabel is how sentence-end markers are displayed
const EndLabel = "<end>"

// TransitionGraph builds the transition graph of the corpus and, when
// cfg.EndMarkers is positive, links sentence-final words to end markers.
func (c *Corpus) TransitionGraph(cfg TransitionConfig) *TransitionGraph {
	tg := BuildTransitionGraph(c.Words, c.Transitions, cfg)
	if cfg.EndMarkers > 0 {
		tg.AddEndMarkers(c.LastWordIDs(), cfg.EndMarkers)
	}
	return tg
}

// CooccurrenceGraph builds the co-occurrence graph of the corpus content words
func (c *Corpus) CooccurrenceGraph(cfg CooccurrenceConfig) *CooccurrenceGraph {
	vocab := ContentVocabulary(c.Words, cfg)
	labels := make(map[int64]string, len(vocab))
	for label, id := range vocab {
		labels[id] = label
	}
	return BuildCooccurrenceGraph(SentenceTokens(c.Sentences, vocab, cfg), labels, cfg.MinWeight)
}

// Trigrams counts the word trigrams observed in the corpus sentences
func (c *Corpus) Trigrams() Trigrams {
	return CountTrigrams(c.TokenRuns())
}
