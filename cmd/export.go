package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"phrasegraph/internal/graph"
)

var exportOut string

type exportNode struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Weight    int    `json:"weight"`
	End       bool   `json:"end,omitempty"`
	Community *int   `json:"community,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

type exportGraph struct {
	Kind  string       `json:"kind"`
	Nodes []exportNode `json:"nodes"`
	Edges any          `json:"edges"`
}

var exportCmd = &cobra.Command{
	Use:       "export transitions|cooccurrence",
	Short:     "Export a word graph as JSON nodes and edges",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"transitions", "cooccurrence"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if kind != "transitions" && kind != "cooccurrence" {
			return fmt.Errorf("unknown graph %q (want transitions or cooccurrence)", kind)
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

		var doc *exportGraph
		if kind == "transitions" {
			doc = exportTransitions(corpus.TransitionGraph(cfg.Transition))
		} else {
			cg := corpus.CooccurrenceGraph(cfg.Cooccurrence)
			doc = exportCooccurrence(cg, graph.DetectCommunities(cg, cfg.Community, cfg.Themes))
		}

		return writeOutput(exportOut, func(out io.Writer) error {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write JSON to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func exportTransitions(tg *graph.TransitionGraph) *exportGraph {
	doc := &exportGraph{Kind: "transitions"}
	for _, n := range tg.Nodes() {
		label := n.Label
		if n.End {
			label = graph.EndLabel
		}
		doc.Nodes = append(doc.Nodes, exportNode{ID: n.ID(), Label: label, Weight: n.Usage, End: n.End})
	}
	doc.Edges = tg.Edges()
	return doc
}

func exportCooccurrence(cg *graph.CooccurrenceGraph, report *graph.CommunityReport) *exportGraph {
	themes := make(map[int]string, len(report.Communities))
	for _, c := range report.Communities {
		themes[c.ID] = c.Theme
	}

	doc := &exportGraph{Kind: "cooccurrence"}
	for _, n := range cg.Nodes() {
		node := exportNode{ID: n.ID(), Label: n.Label, Weight: n.Frequency}
		if cid, ok := report.Partition[n.ID()]; ok {
			node.Community = &cid
			node.Theme = themes[cid]
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	doc.Edges = cg.Edges()
	return doc
}
