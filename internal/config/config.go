package config

import (
	"encoding/json"
	"fmt"
	"os"

	"phrasegraph/internal/generate"
	"phrasegraph/internal/graph"
)

// Config aggregates the tables and thresholds of every pipeline stage
type Config struct {
	Transition   graph.TransitionConfig   `json:"transition"`
	Cooccurrence graph.CooccurrenceConfig `json:"cooccurrence"`
	Community    graph.CommunityConfig    `json:"community"`
	Themes       graph.ThemeTable         `json:"themes"`
	Generation   generate.Config          `json:"generation"`
	Ingest       IngestConfig             `json:"ingest"`
}

// IngestConfig controls how raw text becomes stored sentences
type IngestConfig struct {
	MinWords int `json:"min_words"`
}

// Forbidden words never enter the transition graph.
var defaultForbidden = []string{
	"nbsp", "quot", "lt", "gt", "→", "←", "ref", "wikidata", "suivant", "précédent",
	"description", "displaystyle", "page", "voir", "source", "article", "lien", "consulter",
}

var defaultStopwords = []string{
	"le", "la", "les", "de", "des", "un", "une", "et", "à", "en",
	"dans", "pour", "au", "aux", "du", "ce", "cette", "par", "sur",
	"est", "son", "ses", "qui", "que", "ont", "pas", "avec",
}

var defaultThemes = graph.ThemeTable{
	{Name: "politique", Keywords: []string{"réglementation", "parlement", "présidentiel", "démocratie", "constitution"}},
	{Name: "technologie", Keywords: []string{"auto", "généré", "données", "robotique", "automatique"}},
	{Name: "philosophie", Keywords: []string{"philosophique", "raisonnement", "pensée", "classique", "œuvre"}},
	{Name: "histoire", Keywords: []string{"époque", "siècle", "france", "développement", "essor"}},
}

// Default returns the configuration tuned for French encyclopedic text
func Default() *Config {
	gen := generate.DefaultConfig()
	gen.FunctionWords = []string{"le", "la", "les", "un", "une", "des"}
	gen.SourceWords = []string{"le", "la", "les", "l", "un", "une", "des"}
	gen.SourcesOnlyAtStart = true

	return &Config{
		Transition: graph.TransitionConfig{
			MinUsage:   3,
			MaxUsage:   500,
			Forbidden:  append([]string(nil), defaultForbidden...),
			EndMarkers: 5,
		},
		Cooccurrence: graph.CooccurrenceConfig{
			MinWordLength:    4,
			Stopwords:        append([]string(nil), defaultStopwords...),
			MinWeight:        2,
			MinSentenceWords: 6,
			MaxSentenceWords: 25,
		},
		Community: graph.CommunityConfig{
			Seed:       42,
			Resolution: 1,
			MinSize:    5,
		},
		Themes:     copyThemes(defaultThemes),
		Generation: gen,
		Ingest:     IngestConfig{MinWords: 4},
	}
}

func copyThemes(themes graph.ThemeTable) graph.ThemeTable {
	out := make(graph.ThemeTable, len(themes))
	for i, t := range themes {
		out[i] = graph.Theme{Name: t.Name, Keywords: append([]string(nil), t.Keywords...)}
	}
	return out
}

// Load returns the defaults overlaid with the JSON file at path (if any)
// and then with environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Transition.MinUsage = GetEnvInt("PHRASEGRAPH_MIN_USAGE", c.Transition.MinUsage)
	c.Transition.MaxUsage = GetEnvInt("PHRASEGRAPH_MAX_USAGE", c.Transition.MaxUsage)
	c.Transition.TopN = GetEnvInt("PHRASEGRAPH_TOP_N", c.Transition.TopN)
	c.Community.MinSize = GetEnvInt("PHRASEGRAPH_MIN_COMM_SIZE", c.Community.MinSize)
	c.Community.Seed = uint64(GetEnvInt("PHRASEGRAPH_SEED", int(c.Community.Seed)))
	c.Cooccurrence.MinWeight = GetEnvFloat("PHRASEGRAPH_MIN_WEIGHT", c.Cooccurrence.MinWeight)
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Transition.MaxUsage > 0 && c.Transition.MaxUsage < c.Transition.MinUsage {
		return fmt.Errorf("transition: max_usage %d is below min_usage %d", c.Transition.MaxUsage, c.Transition.MinUsage)
	}
	g := c.Generation
	if g.MinLength < 1 || g.MaxLength < g.MinLength {
		return fmt.Errorf("generation: invalid length range [%d, %d]", g.MinLength, g.MaxLength)
	}
	if g.MaxAttempts < 1 || g.MaxSteps < 1 {
		return fmt.Errorf("generation: max_attempts and max_steps must be positive")
	}
	if g.EarlyStop < 0 || g.EarlyStop > 1 {
		return fmt.Errorf("generation: early_stop %.2f outside [0, 1]", g.EarlyStop)
	}
	if c.Community.Resolution <= 0 {
		return fmt.Errorf("community: resolution must be positive")
	}
	return nil
}
