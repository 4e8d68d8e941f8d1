package graph

import "sort"

// CommunitySummary describes one community of the final partition
type CommunitySummary struct {
	ID    int      `json:"id"`
	Theme string   `json:"theme"`
	Size  int      `json:"size"`
	Words []string `json:"words"` // most frequent first
}

// CommunityReport is the outcome of community detection on a co-occurrence graph
type CommunityReport struct {
	Modularity  float64            `json:"modularity"`
	Nodes       int                `json:"nodes"`
	Edges       int                `json:"edges"`
	Sentences   int                `json:"sentences"`
	Communities []CommunitySummary `json:"communities"`
	Merges      []MergeEvent       `json:"merges"`
	Partition   Partition          `json:"-"`
}

// DetectCommunities partitions the graph, merges undersized communities,
// labels each community with a theme and scores the final partition.
func DetectCommunities(g *CooccurrenceGraph, cfg CommunityConfig, themes ThemeTable) *CommunityReport {
	part := g.Partition(cfg)
	merged, events := g.MergeSmallCommunities(part, cfg.MinSize)

	report := &CommunityReport{
		Modularity: g.Modularity(merged),
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Sentences:  g.SentenceCount(),
		Merges:     events,
		Partition:  merged,
	}

	groups := merged.Groups()
	for _, cid := range merged.CommunityIDs() {
		nodes := make([]*ContentNode, 0, len(groups[cid]))
		for _, id := range groups[cid] {
			nodes = append(nodes, g.Node(id))
		}
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Frequency > nodes[j].Frequency })

		words := make([]string, len(nodes))
		for i, n := range nodes {
			words[i] = n.Label
		}
		report.Communities = append(report.Communities, CommunitySummary{
			ID:    cid,
			Theme: themes.Classify(words),
			Size:  len(words),
			Words: words,
		})
	}
	return report
}

// AnalyzerConfig holds topology analysis parameters
type AnalyzerConfig struct {
	HubThreshold int
	TopN         int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		HubThreshold: 15,
		TopN:         10,
	}
}

// AnalysisReport is the structural analysis of both word graphs
type AnalysisReport struct {
	Connectivity float64         `json:"connectivity"` // share of transition nodes in the largest component
	Transitions  *TopologyReport `json:"transitions"`
	Cooccurrence *TopologyReport `json:"cooccurrence"`
	Bridges      *BridgeReport   `json:"bridges"`
}

// Analyze computes the topology of the transition and co-occurrence graphs
// and the structural fragility of the co-occurrence graph. part, when not
// nil, is used to find weakly linked communities.
func Analyze(tg *TransitionGraph, cg *CooccurrenceGraph, part Partition, config *AnalyzerConfig) *AnalysisReport {
	transitions := ComputeTopology(tg.Graph(), func(id int64) string {
		if n := tg.Node(id); n != nil && !n.End {
			return n.Label
		}
		return EndLabel
	}, config.HubThreshold, config.TopN)

	cooccurrence := ComputeTopology(cg.Graph(), func(id int64) string {
		if n := cg.Node(id); n != nil {
			return n.Label
		}
		return ""
	}, config.HubThreshold, config.TopN)

	var connectivity float64
	if transitions.TotalNodes > 0 {
		connectivity = float64(transitions.LargestComponent) / float64(transitions.TotalNodes)
	}

	return &AnalysisReport{
		Connectivity: connectivity,
		Transitions:  transitions,
		Cooccurrence: cooccurrence,
		Bridges:      ComputeBridges(cg, part),
	}
}
