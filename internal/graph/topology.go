package graph

import (
	"sort"

	gonum "gonum.org/v1/gonum/graph"
)

// HubNode is a word with high connectivity
type HubNode struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Degree    int    `json:"degree"`
	InDegree  int    `json:"in_degree,omitempty"`
	OutDegree int    `json:"out_degree,omitempty"`
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopologyReport contains topology analysis results
type TopologyReport struct {
	TotalNodes        int            `json:"total_nodes"`
	TotalEdges        int            `json:"total_edges"`
	NumComponents     int            `json:"num_components"`
	LargestComponent  int            `json:"largest_component"`
	SmallestComponent int            `json:"smallest_component"`
	IsolatedCount     int            `json:"isolated_count"`
	Isolated          []string       `json:"isolated"`
	DegreeHistogram   []DegreeBucket `json:"degree_histogram"`
	Hubs              []HubNode      `json:"hubs"`
}

// ComputeTopology analyzes a word graph: weakly connected components,
// isolated words, degree distribution and hubs. Directed graphs report
// in and out degrees separately.
func ComputeTopology(g gonum.Graph, label func(id int64) string, hubThreshold, topN int) *TopologyReport {
	nodeIDs := nodeIDsOf(g)
	totalNodes := len(nodeIDs)
	if totalNodes == 0 {
		return &TopologyReport{DegreeHistogram: defaultHistogram()}
	}

	dg, directed := g.(gonum.Directed)
	inDeg := make(map[int64]int, totalNodes)
	outDeg := make(map[int64]int, totalNodes)
	degree := make(map[int64]int, totalNodes)
	uf := NewUnionFind(nodeIDs)
	totalEdges := 0

	for _, id := range nodeIDs {
		it := g.From(id)
		for it.Next() {
			to := it.Node().ID()
			uf.Union(id, to)
			outDeg[id]++
			totalEdges++
		}
		if directed {
			inDeg[id] = dg.To(id).Len()
			degree[id] = outDeg[id] + inDeg[id]
		} else {
			degree[id] = outDeg[id]
		}
	}
	if !directed {
		totalEdges /= 2
	}

	components := uf.Components()
	largest, smallest := 0, totalNodes
	for _, c := range components {
		largest = max(largest, len(c))
		smallest = min(smallest, len(c))
	}

	var isolated []string
	buckets := [7]int{}
	var hubs []HubNode
	for _, id := range nodeIDs {
		d := degree[id]
		buckets[degreeBucket(d)]++
		if d == 0 {
			isolated = append(isolated, label(id))
		}
		if d > hubThreshold {
			hub := HubNode{ID: id, Label: label(id), Degree: d}
			if directed {
				hub.InDegree, hub.OutDegree = inDeg[id], outDeg[id]
			}
			hubs = append(hubs, hub)
		}
	}

	topN = max(topN, 0)
	isolatedCount := len(isolated)
	sort.Strings(isolated)
	if len(isolated) > topN {
		isolated = isolated[:topN]
	}

	histogram := defaultHistogram()
	for i := range histogram {
		histogram[i].Count = buckets[i]
	}

	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}

	return &TopologyReport{
		TotalNodes:        totalNodes,
		TotalEdges:        totalEdges,
		NumComponents:     len(components),
		LargestComponent:  largest,
		SmallestComponent: smallest,
		IsolatedCount:     isolatedCount,
		Isolated:          isolated,
		DegreeHistogram:   histogram,
		Hubs:              hubs,
	}
}

func nodeIDsOf(g gonum.Graph) []int64 {
	var ids []int64
	it := g.Nodes()
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	case degree <= 31:
		return 5
	default:
		return 6
	}
}
