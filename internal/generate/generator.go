package generate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"phrasegraph/internal/graph"
	"phrasegraph/internal/logging"
)

// Sentinel sentences returned instead of errors
const (
	EmptyGraphSentence = "[generation impossible: the graph is empty]"
	FailedSentence     = "[generation failed after several attempts]"
)

var (
	ErrNoStart     = errors.New("no start word with outgoing transitions")
	ErrTooShort    = errors.New("sentence too short")
	ErrUnknownWord = errors.New("word missing from graph")
)

var spaceBeforePunct = regexp.MustCompile(`\s+([,;.!?])`)

type successor struct {
	to     int64
	weight int
}

// Result is one generated sentence
type Result struct {
	Text     string `json:"text"`
	Attempts int    `json:"attempts"`
	OK       bool   `json:"ok"`
}

// Generator walks a transition graph to produce sentences. All tables are
// computed once in New and only read afterwards, so one Generator may serve
// concurrent calls as long as each call has its own *rand.Rand.
type Generator struct {
	cfg      Config
	labels   map[int64]string
	ends     map[int64]bool
	succ     map[int64][]successor
	context  map[[2]int64]map[int64]int
	sources  []int64
	function map[string]bool
}

// New prepares a generator. trigrams supplies the observed (prev, current,
// next) counts used for the context bonus; when nil they are derived from
// the transition graph.
func New(tg *graph.TransitionGraph, cfg Config, trigrams graph.Trigrams) *Generator {
	g := &Generator{
		cfg:      cfg,
		labels:   make(map[int64]string),
		ends:     make(map[int64]bool),
		succ:     make(map[int64][]successor),
		context:  make(map[[2]int64]map[int64]int),
		function: make(map[string]bool, len(cfg.FunctionWords)),
	}
	for _, w := range cfg.FunctionWords {
		g.function[strings.ToLower(w)] = true
	}

	for _, n := range tg.Nodes() {
		if n.End {
			g.ends[n.ID()] = true
			continue
		}
		g.labels[n.ID()] = strings.ToLower(n.Label)
	}

	sourceSet := make(map[int64]bool)
	for _, w := range cfg.SourceWords {
		if id, ok := tg.Lookup(w); ok && !g.ends[id] {
			sourceSet[id] = true
		}
	}
	restrictTargets := cfg.SourcesOnlyAtStart && len(cfg.SourceWords) > 0

	for _, n := range tg.Nodes() {
		if n.End {
			continue
		}
		for _, s := range tg.Successors(n.ID()) {
			if restrictTargets && sourceSet[s.ID] {
				continue
			}
			g.succ[n.ID()] = append(g.succ[n.ID()], successor{to: s.ID, weight: s.Weight})
		}
		if len(cfg.SourceWords) == 0 || sourceSet[n.ID()] {
			g.sources = append(g.sources, n.ID())
		}
	}

	if trigrams == nil {
		trigrams = tg.TransitionTrigrams()
	}
	for k, n := range trigrams {
		key := [2]int64{k[0], k[1]}
		if g.context[key] == nil {
			g.context[key] = make(map[int64]int)
		}
		g.context[key][k[2]] += n
	}

	logging.Debug("generator ready", "words", len(g.labels), "sources", len(g.sources), "contexts", len(g.context))
	return g
}

// Generate returns one sentence, or a sentinel string when the graph is
// empty or every attempt failed.
func (g *Generator) Generate(rng *rand.Rand) Result {
	if len(g.labels) == 0 {
		return Result{Text: EmptyGraphSentence}
	}
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		text, err := g.attempt(rng)
		if err == nil {
			return Result{Text: text, Attempts: attempt, OK: true}
		}
		logging.Debug("generation attempt failed", "attempt", attempt, "err", err)
	}
	return Result{Text: FailedSentence, Attempts: g.cfg.MaxAttempts}
}

func (g *Generator) attempt(rng *rand.Rand) (string, error) {
	current, err := g.pickStart(rng)
	if err != nil {
		return "", err
	}

	lo, hi := g.cfg.MinLength, max(g.cfg.MinLength, g.cfg.MaxLength)
	minLen := lo + rng.IntN(hi-lo+1)
	window := max(g.cfg.RecentWindow, 2)

	history := []int64{current}
	tokens := []string{capitalize(g.labels[current])}

	for step := 0; step < g.cfg.MaxSteps; step++ {
		next, ok := g.next(rng, current, history)
		if !ok || g.ends[next] {
			if len(tokens) >= minLen {
				return g.finish(rng, tokens)
			}
			continue
		}

		word, known := g.labels[next]
		if !known {
			return "", fmt.Errorf("%w: %d", ErrUnknownWord, next)
		}
		tokens = append(tokens, g.smooth(tokens[len(tokens)-1], word, len(tokens)))

		history = append(history, next)
		if len(history) > window {
			history = history[len(history)-window:]
		}
		current = next

		if len(tokens) >= minLen && rng.Float64() < g.cfg.EarlyStop {
			break
		}
	}
	return g.finish(rng, tokens)
}

func (g *Generator) pickStart(rng *rand.Rand) (int64, error) {
	weights := make([]int, len(g.sources))
	total := 0
	for i, id := range g.sources {
		for _, s := range g.succ[id] {
			weights[i] += s.weight
		}
		total += weights[i]
	}
	if total <= 0 {
		return 0, ErrNoStart
	}
	return g.sources[weightedIndex(rng, weights, total)], nil
}

// next draws a successor of current. Level 0 scores candidates with the
// context bonus and repetition penalty; deeper levels fall back to the bare
// transition weights. ok is false when nothing can be drawn.
func (g *Generator) next(rng *rand.Rand, current int64, history []int64) (int64, bool) {
	cands := g.succ[current]
	if len(cands) == 0 {
		return 0, false
	}
	scores := make([]int, len(cands))
	for level := 0; level <= g.cfg.FallbackDepth; level++ {
		total := 0
		for i, c := range cands {
			s := c.weight
			if level == 0 {
				s = g.score(c, current, history)
			}
			scores[i] = max(s, 0)
			total += scores[i]
		}
		if total > 0 {
			return cands[weightedIndex(rng, scores, total)].to, true
		}
	}
	return 0, false
}

func (g *Generator) score(c successor, current int64, history []int64) int {
	s := c.weight
	if len(history) >= 2 {
		prev := history[len(history)-2]
		s += g.cfg.ContextBonus * g.context[[2]int64{prev, current}][c.to]
	}
	recent := history
	if len(recent) > g.cfg.RecentWindow {
		recent = recent[len(recent)-g.cfg.RecentWindow:]
	}
	for _, id := range recent {
		if id == c.to {
			return max(1, s/2)
		}
	}
	return s
}

// smooth applies the surface rules to word given the previous token.
// Function words are kept as is after the first token. Otherwise, when both
// tokens end with the same plural suffix, the suffix is dropped from word.
func (g *Generator) smooth(prev, word string, tokenCount int) string {
	if g.function[word] && tokenCount > 1 {
		return word
	}
	prev = strings.ToLower(prev)
	for _, suf := range g.cfg.PluralSuffixes {
		if strings.HasSuffix(prev, suf) && strings.HasSuffix(word, suf) && len(word) > len(suf) {
			return strings.TrimSuffix(word, suf)
		}
	}
	return word
}

func (g *Generator) finish(rng *rand.Rand, tokens []string) (string, error) {
	out := make([]string, len(tokens))
	copy(out, tokens)
	if len(g.cfg.Punctuation) > 0 {
		out[len(out)-1] += g.cfg.Punctuation[rng.IntN(len(g.cfg.Punctuation))]
	}

	text := strings.Join(out, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = capitalize(strings.Join(strings.Fields(text), " "))

	if n := len(strings.Fields(text)); n < g.cfg.MinTokens {
		return "", fmt.Errorf("%w: %d tokens", ErrTooShort, n)
	}
	return text, nil
}

func weightedIndex(rng *rand.Rand, weights []int, total int) int {
	r := rng.IntN(total)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
