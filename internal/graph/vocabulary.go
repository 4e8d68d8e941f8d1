package graph

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CooccurrenceConfig controls the content vocabulary and the edge threshold
type CooccurrenceConfig struct {
	MinWordLength    int      `json:"min_word_length"`
	Stopwords        []string `json:"stopwords"`
	MinWeight        float64  `json:"min_weight"`
	MinSentenceWords int      `json:"min_sentence_words"`
	MaxSentenceWords int      `json:"max_sentence_words"` // 0 disables the upper bound
}

// ContentVocabulary maps the surface form of every content word to its id.
// Content words are purely alphabetic, at least MinWordLength runes long
// and not stopwords.
func ContentVocabulary(words []WordInfo, cfg CooccurrenceConfig) map[string]int64 {
	stop := make(map[string]bool, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stop[strings.ToLower(w)] = true
	}

	vocab := make(map[string]int64)
	for _, w := range words {
		label := strings.ToLower(strings.TrimSpace(w.Label))
		if utf8.RuneCountInString(label) < cfg.MinWordLength || stop[label] || !alphabetic(label) {
			continue
		}
		if _, dup := vocab[label]; !dup {
			vocab[label] = w.ID
		}
	}
	return vocab
}

// SentenceTokens keeps sentences whose word count is inside the configured
// bounds and maps their content words to ids, preserving order.
func SentenceTokens(sentences []string, vocab map[string]int64, cfg CooccurrenceConfig) [][]int64 {
	var out [][]int64
	for _, s := range sentences {
		fields := strings.Fields(strings.ToLower(s))
		if len(fields) < cfg.MinSentenceWords || (cfg.MaxSentenceWords > 0 && len(fields) > cfg.MaxSentenceWords) {
			continue
		}
		ids := make([]int64, 0, len(fields))
		for _, f := range fields {
			if id, ok := vocab[f]; ok {
				ids = append(ids, id)
			}
		}
		out = append(out, ids)
	}
	return out
}

func alphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
