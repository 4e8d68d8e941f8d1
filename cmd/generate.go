package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"phrasegraph/internal/generate"
	"phrasegraph/internal/graph"
	"phrasegraph/internal/logging"
)

var (
	generateCount    int
	generateSeed     uint64
	generateWorkers  int
	generateTopN     int
	generateMinUsage int
	generateMaxUsage int
	generateOut      string
	generateJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sentences by walking the transition graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkNonNegative("count", generateCount); err != nil {
			return err
		}
		if err := checkNonNegative("top-n", generateTopN); err != nil {
			return err
		}

		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		corpus, err := graph.LoadCorpus(d)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}

		tcfg := cfg.Transition
		if cmd.Flags().Changed("top-n") {
			tcfg.TopN = generateTopN
		}
		if cmd.Flags().Changed("min-usage") {
			tcfg.MinUsage = generateMinUsage
		}
		if cmd.Flags().Changed("max-usage") {
			tcfg.MaxUsage = generateMaxUsage
		}

		tg := corpus.TransitionGraph(tcfg)
		gen := generate.New(tg, cfg.Generation, corpus.Trigrams())

		seed := generateSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		logging.Debug("generating", "count", generateCount, "seed", seed, "nodes", tg.NodeCount())

		results, err := gen.GenerateN(cmd.Context(), generateCount, seed, generateWorkers)
		if err != nil {
			return err
		}

		return writeOutput(generateOut, func(out io.Writer) error {
			if generateJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Seed      uint64            `json:"seed"`
					Sentences []generate.Result `json:"sentences"`
				}{seed, results})
			}

			failed := 0
			for i, r := range results {
				text := r.Text
				if !r.OK {
					failed++
					if generateOut == "" {
						text = failStyle.Render(text)
					}
				}
				fmt.Fprintf(out, "%d. %s\n", i+1, text)
			}
			if failed > 0 {
				logging.Warn("some sentences could not be generated", "failed", failed, "total", len(results))
			}
			return nil
		})
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 5, "Number of sentences")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Random seed (0 picks one from the clock)")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "Parallel workers (0 uses every CPU)")
	generateCmd.Flags().IntVar(&generateTopN, "top-n", 0, "Keep only the N most used words (0 keeps all)")
	generateCmd.Flags().IntVar(&generateMinUsage, "min-usage", 0, "Minimum word usage")
	generateCmd.Flags().IntVar(&generateMaxUsage, "max-usage", 0, "Maximum word usage (0 is unbounded)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Write sentences to this file instead of stdout")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(generateCmd)
}
