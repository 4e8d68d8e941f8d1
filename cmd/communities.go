package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"phrasegraph/internal/graph"
)

var (
	communitiesSeed      uint64
	communitiesMinSize   int
	communitiesMinWeight float64
	communitiesWords     int
	communitiesOut       string
	communitiesJSON      bool
)

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "Detect themed word communities in the co-occurrence graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkNonNegative("words", communitiesWords); err != nil {
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

		ccfg := cfg.Cooccurrence
		if cmd.Flags().Changed("min-weight") {
			ccfg.MinWeight = communitiesMinWeight
		}
		pcfg := cfg.Community
		if cmd.Flags().Changed("seed") {
			pcfg.Seed = communitiesSeed
		}
		if cmd.Flags().Changed("min-size") {
			pcfg.MinSize = communitiesMinSize
		}

		cg := corpus.CooccurrenceGraph(ccfg)
		report := graph.DetectCommunities(cg, pcfg, cfg.Themes)

		return writeOutput(communitiesOut, func(out io.Writer) error {
			if communitiesJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			if communitiesOut == "" {
				printHeading("communities")
			}
			fmt.Fprintf(out, "  %d sentences, %d words, %d edges\n",
				report.Sentences, report.Nodes, report.Edges)
			fmt.Fprintf(out, "  Modularity: %.4f\n\n", report.Modularity)
			for _, c := range report.Communities {
				theme := c.Theme
				if communitiesOut == "" {
					theme = themeStyle.Render(theme)
				}
				words := c.Words[:min(communitiesWords, len(c.Words))]
				fmt.Fprintf(out, "  [%d] %s (%s): %s\n", c.ID, theme, plural(c.Size, "word"), strings.Join(words, ", "))
			}
			unmerged := 0
			for _, m := range report.Merges {
				if !m.Merged {
					unmerged++
				}
			}
			if len(report.Merges) > 0 {
				fmt.Fprintf(out, "\n  %d small communities merged, %d left isolated\n",
					len(report.Merges)-unmerged, unmerged)
			}
			return nil
		})
	},
}

func init() {
	communitiesCmd.Flags().Uint64Var(&communitiesSeed, "seed", 42, "Louvain random seed")
	communitiesCmd.Flags().IntVar(&communitiesMinSize, "min-size", 5, "Communities smaller than this are merged into a neighbour")
	communitiesCmd.Flags().Float64Var(&communitiesMinWeight, "min-weight", 2, "Minimum TF-IDF weight for an edge")
	communitiesCmd.Flags().IntVar(&communitiesWords, "words", 10, "Words listed per community")
	communitiesCmd.Flags().StringVarP(&communitiesOut, "out", "o", "", "Write the report to this file instead of stdout")
	communitiesCmd.Flags().BoolVar(&communitiesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(communitiesCmd)
}
