package graph

import (
	"strings"
	"unicode"
)

// TraceStep reports one consecutive word pair of a traced sentence
type TraceStep struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Weight  int    `json:"weight"`
	Present bool   `json:"present"`
}

// Trace explains whether a sentence could have been walked on the graph
type Trace struct {
	Sentence string      `json:"sentence"`
	Words    []string    `json:"words"`
	Unknown  []string    `json:"unknown"`
	Steps    []TraceStep `json:"steps"`
	Valid    bool        `json:"valid"`
}

// Trace looks up every consecutive word pair of sentence in the graph.
// A sentence is valid when it has at least one pair and every pair is an edge.
func (t *TransitionGraph) Trace(sentence string) *Trace {
	tr := &Trace{Sentence: sentence}
	for _, tok := range strings.Fields(strings.ToLower(sentence)) {
		tok = strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) })
		if tok != "" {
			tr.Words = append(tr.Words, tok)
		}
	}

	ids := make([]int64, len(tr.Words))
	known := make([]bool, len(tr.Words))
	for i, w := range tr.Words {
		ids[i], known[i] = t.Lookup(w)
		if !known[i] {
			tr.Unknown = append(tr.Unknown, w)
		}
	}

	tr.Valid = len(tr.Words) > 1
	for i := 0; i+1 < len(tr.Words); i++ {
		step := TraceStep{From: tr.Words[i], To: tr.Words[i+1]}
		if known[i] && known[i+1] {
			step.Weight, step.Present = t.Weight(ids[i], ids[i+1])
		}
		if !step.Present {
			tr.Valid = false
		}
		tr.Steps = append(tr.Steps, step)
	}
	return tr
}
