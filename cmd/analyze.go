package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"phrasegraph/internal/graph"
)

var (
	analyzeJSON         bool
	analyzeTopN         int
	analyzeHubThreshold int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the word graphs: components, isolated words, hubs, bridges",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkNonNegative("top-n", analyzeTopN); err != nil {
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

		tg := corpus.TransitionGraph(cfg.Transition)
		cg := corpus.CooccurrenceGraph(cfg.Cooccurrence)
		communities := graph.DetectCommunities(cg, cfg.Community, cfg.Themes)

		config := &graph.AnalyzerConfig{
			HubThreshold: analyzeHubThreshold,
			TopN:         analyzeTopN,
		}
		report := graph.Analyze(tg, cg, communities.Partition, config)

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printHumanReadable(report)
		return nil
	},
}

func init() {
	defaults := graph.DefaultConfig()
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", defaults.TopN, "Number of top items to show per section")
	analyzeCmd.Flags().IntVar(&analyzeHubThreshold, "hub-threshold", defaults.HubThreshold, "Minimum degree to consider a word a hub")
	rootCmd.AddCommand(analyzeCmd)
}

func printHumanReadable(report *graph.AnalysisReport) {
	// Connectivity bar
	barLen := int(report.Connectivity * 20)
	if barLen > 20 {
		barLen = 20
	}
	bar := strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
	fmt.Printf("\n  Connectivity: %.0f%%  [%s]\n\n", report.Connectivity*100, bar)

	printTopology("transition graph", report.Transitions)
	printTopology("co-occurrence graph", report.Cooccurrence)

	br := report.Bridges
	if br.APCount > 0 || br.BridgeCount > 0 || len(br.FragileConnections) > 0 {
		printHeading("structural fragility")
		if br.APCount > 0 {
			fmt.Printf("  %d articulation words (removal disconnects graph):\n", br.APCount)
			for _, ap := range br.ArticulationPoints[:min(10, len(br.ArticulationPoints))] {
				fmt.Printf("    %s (degree %d)\n", truncTitle(ap.Label, 40), ap.Degree)
			}
		}
		if br.BridgeCount > 0 {
			fmt.Printf("  %d bridge edges (removal disconnects graph):\n", br.BridgeCount)
			for _, be := range br.BridgeEdges[:min(10, len(br.BridgeEdges))] {
				fmt.Printf("    %s -- %s\n", truncTitle(be.SourceLabel, 30), truncTitle(be.TargetLabel, 30))
			}
		}
		if len(br.FragileConnections) > 0 {
			fmt.Printf("  %d fragile community connections (<=2 edges):\n", len(br.FragileConnections))
			for _, fc := range br.FragileConnections[:min(10, len(br.FragileConnections))] {
				fmt.Printf("    community %d <-> community %d (%s)\n",
					fc.CommunityA, fc.CommunityB, plural(fc.CrossEdges, "edge"))
			}
		}
	}

	fmt.Println()
}

func printTopology(title string, t *graph.TopologyReport) {
	printHeading(title)
	fmt.Printf("  Nodes: %d  Edges: %d  Components: %d\n", t.TotalNodes, t.TotalEdges, t.NumComponents)
	fmt.Printf("  Largest component: %d  Smallest: %d\n", t.LargestComponent, t.SmallestComponent)

	if t.IsolatedCount > 0 {
		fmt.Printf("  Isolated: %d words without edges\n", t.IsolatedCount)
		for _, label := range t.Isolated[:min(5, len(t.Isolated))] {
			fmt.Printf("    - %s\n", truncTitle(label, 50))
		}
		if t.IsolatedCount > 5 {
			fmt.Printf("    ... and %d more\n", t.IsolatedCount-5)
		}
	}

	// Degree distribution
	fmt.Println("\n  Degree distribution:")
	for _, b := range t.DegreeHistogram {
		if b.Count > 0 {
			barWidth := int(math.Log2(float64(b.Count))) + 2
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth))
		}
	}

	if len(t.Hubs) > 0 {
		fmt.Println("\n  Top hubs (degree > threshold):")
		for _, hub := range t.Hubs {
			if hub.InDegree > 0 || hub.OutDegree > 0 {
				fmt.Printf("    %-24s degree=%d (in=%d, out=%d)\n",
					truncTitle(hub.Label, 24), hub.Degree, hub.InDegree, hub.OutDegree)
			} else {
				fmt.Printf("    %-24s degree=%d\n", truncTitle(hub.Label, 24), hub.Degree)
			}
		}
	}
	fmt.Println()
}
