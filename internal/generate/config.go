package generate

// Config holds the tunables of sentence generation
type Config struct {
	MinLength     int     `json:"min_length"` // forced minimum is drawn from [MinLength, MaxLength]
	MaxLength     int     `json:"max_length"`
	MinTokens     int     `json:"min_tokens"` // shorter sentences fail the attempt
	MaxSteps      int     `json:"max_steps"`
	MaxAttempts   int     `json:"max_attempts"`
	FallbackDepth int     `json:"fallback_depth"`
	EarlyStop     float64 `json:"early_stop"`
	ContextBonus  int     `json:"context_bonus"` // multiplier of the trigram count
	RecentWindow  int     `json:"recent_window"` // repeats within this many words are penalized

	Punctuation    []string `json:"punctuation"`
	FunctionWords  []string `json:"function_words"`
	PluralSuffixes []string `json:"plural_suffixes"`

	// SourceWords restricts start words. Empty means any word.
	SourceWords []string `json:"source_words"`
	// SourcesOnlyAtStart keeps source words out of the rest of the sentence.
	SourcesOnlyAtStart bool `json:"sources_only_at_start"`
}

// DefaultConfig returns the language-neutral defaults
func DefaultConfig() Config {
	return Config{
		MinLength:      8,
		MaxLength:      12,
		MinTokens:      6,
		MaxSteps:       25,
		MaxAttempts:    10,
		FallbackDepth:  2,
		EarlyStop:      0.3,
		ContextBonus:   2,
		RecentWindow:   3,
		Punctuation:    []string{".", ".", "?", "!", "..."},
		PluralSuffixes: []string{"s", "x"},
	}
}
