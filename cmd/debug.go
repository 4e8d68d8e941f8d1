package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"phrasegraph/internal/graph"
)

var debugJSON bool

var debugCmd = &cobra.Command{
	Use:   "debug <sentence>",
	Short: "Check which word transitions of a sentence exist in the graph",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		corpus, err := graph.LoadCorpus(d)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}
		tg := corpus.TransitionGraph(cfg.Transition)
		trace := tg.Trace(strings.Join(args, " "))

		if debugJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(trace)
		}

		printHeading("transition trace")
		for _, s := range trace.Steps {
			if s.Present {
				fmt.Printf("  %s -> %s  (weight %d)\n", s.From, s.To, s.Weight)
			} else {
				fmt.Printf("  %s -> %s  %s\n", s.From, s.To, failStyle.Render("missing"))
			}
		}
		if len(trace.Unknown) > 0 {
			fmt.Printf("\n  Not in graph: %s\n", strings.Join(trace.Unknown, ", "))
		}
		verdict := themeStyle.Render("walkable")
		if !trace.Valid {
			verdict = failStyle.Render("not walkable")
		}
		fmt.Printf("\n  Sentence is %s\n", verdict)
		return nil
	},
}

func init() {
	debugCmd.Flags().BoolVar(&debugJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(debugCmd)
}
