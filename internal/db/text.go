package db

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern       = regexp.MustCompile(`https?://\S+|www\.\S+`)
	digitPattern     = regexp.MustCompile(`\d+`)
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
)

// NormalizeText lowercases raw text and keeps only letters, apostrophes,
// hyphens and sentence terminators, collapsing everything else to single spaces.
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, " ")
	text = digitPattern.ReplaceAllString(text, " ")
	text = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), r == '\'', r == '-', r == '.', r == '!', r == '?':
			return r
		default:
			return ' '
		}
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// SplitSentences normalizes text and splits it on terminal punctuation.
// Sentences with fewer than minWords words are dropped.
func SplitSentences(text string, minWords int) []string {
	var sentences []string
	for _, part := range sentenceBoundary.Split(NormalizeText(text), -1) {
		part = strings.TrimSpace(part)
		if part == "" || len(strings.Fields(part)) < minWords {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// Words returns the alphabetic tokens of a sentence, lowercased, skipping
// any token present in forbidden.
func Words(sentence string, forbidden map[string]bool) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(sentence)) {
		if !isAlpha(w) || forbidden[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

func isAlpha(s string) bool {
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
