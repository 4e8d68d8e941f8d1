package graph

// Uncategorized is the theme of a community matching no keyword
const Uncategorized = "uncategorized"

// Theme is a named keyword set
type Theme struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// ThemeTable is an ordered list of themes. Order breaks ties.
type ThemeTable []Theme

// Classify returns the theme with the most keywords present among words
// (exact match). Ties go to the theme declared first;
// no match at all gives Uncategorized.
func (t ThemeTable) Classify(words []string) string {
	present := make(map[string]bool, len(words))
	for _, w := range words {
		present[w] = true
	}

	best, bestScore := Uncategorized, 0
	for _, theme := range t {
		score := 0
		for _, kw := range theme.Keywords {
			if present[kw] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = theme.Name, score
		}
	}
	return best
}
