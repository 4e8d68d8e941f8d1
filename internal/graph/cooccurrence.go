package graph

import (
	"math"
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"phrasegraph/internal/logging"
)

// ContentNode is a vertex of the co-occurrence graph
type ContentNode struct {
	id        int64
	Label     string
	Frequency int // number of sentences containing the word
}

// ID implements gonum's graph.Node
func (n *ContentNode) ID() int64 { return n.id }

// CooccurrenceEdge is an undirected co-occurrence link carrying both the raw
// pair count and its TF-IDF weight
type CooccurrenceEdge struct {
	F, T     *ContentNode
	RawCount int
	W        float64
}

func (e CooccurrenceEdge) From() gonum.Node { return e.F }
func (e CooccurrenceEdge) To() gonum.Node   { return e.T }
func (e CooccurrenceEdge) Weight() float64  { return e.W }

// ReversedEdge returns the edge with its endpoints swapped
func (e CooccurrenceEdge) ReversedEdge() gonum.Edge {
	e.F, e.T = e.T, e.F
	return e
}

// CooccurrencePair is an exported view of one edge with Source < Target
type CooccurrencePair struct {
	Source      int64   `json:"source"`
	Target      int64   `json:"target"`
	SourceLabel string  `json:"source_label"`
	TargetLabel string  `json:"target_label"`
	RawCount    int     `json:"raw_count"`
	Weight      float64 `json:"weight"`
}

// CooccurrenceGraph links content words appearing in the same sentence
type CooccurrenceGraph struct {
	g         *simple.WeightedUndirectedGraph
	sentences int
}

// BuildCooccurrenceGraph counts, for every sentence, each unordered pair of
// distinct word ids under its canonical key (smaller id first), weights the
// pair as raw * ln(total / (1 + df)) where df is the number of occurrences of
// the pair key in the pair table, and keeps pairs weighing at least minWeight.
func BuildCooccurrenceGraph(sentences [][]int64, labels map[int64]string, minWeight float64) *CooccurrenceGraph {
	pairs := make(map[[2]int64]int)
	freq := make(map[int64]int)
	for _, s := range sentences {
		distinct := uniqueSorted(s)
		for _, id := range distinct {
			freq[id]++
		}
		for i, a := range distinct {
			for _, b := range distinct[i+1:] {
				pairs[[2]int64{a, b}]++
			}
		}
	}

	total := len(sentences)
	if total == 0 {
		total = 1
	}
	// Each canonical key is stored once in the pair table.
	const df = 1
	idf := math.Log(float64(total) / float64(1+df))

	keys := make([][2]int64, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	cg := &CooccurrenceGraph{
		g:         simple.NewWeightedUndirectedGraph(0, 0),
		sentences: len(sentences),
	}
	node := func(id int64) *ContentNode {
		if n, ok := cg.g.Node(id).(*ContentNode); ok {
			return n
		}
		n := &ContentNode{id: id, Label: labels[id], Frequency: freq[id]}
		cg.g.AddNode(n)
		return n
	}

	kept := 0
	for _, k := range keys {
		raw := pairs[k]
		w := float64(raw) * idf
		if w < minWeight {
			continue
		}
		cg.g.SetWeightedEdge(CooccurrenceEdge{F: node(k[0]), T: node(k[1]), RawCount: raw, W: w})
		kept++
	}

	logging.Debug("co-occurrence graph built",
		"sentences", len(sentences), "pairs", len(pairs), "edges", kept, "nodes", cg.g.Nodes().Len())
	return cg
}

func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Graph exposes the underlying gonum graph for read-only algorithms
func (c *CooccurrenceGraph) Graph() gonum.WeightedUndirected {
	return c.g
}

// SentenceCount returns the number of sentences the graph was built from
func (c *CooccurrenceGraph) SentenceCount() int {
	return c.sentences
}

// Node returns the node with the given id, or nil
func (c *CooccurrenceGraph) Node(id int64) *ContentNode {
	n, _ := c.g.Node(id).(*ContentNode)
	return n
}

// Nodes returns every node ordered by id
func (c *CooccurrenceGraph) Nodes() []*ContentNode {
	var out []*ContentNode
	it := c.g.Nodes()
	for it.Next() {
		out = append(out, it.Node().(*ContentNode))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// NodeCount returns the number of nodes
func (c *CooccurrenceGraph) NodeCount() int {
	return c.g.Nodes().Len()
}

// Edge returns the edge between a and b in canonical orientation
func (c *CooccurrenceGraph) Edge(a, b int64) (CooccurrenceEdge, bool) {
	if a > b {
		a, b = b, a
	}
	e := c.g.WeightedEdgeBetween(a, b)
	if e == nil {
		return CooccurrenceEdge{}, false
	}
	return e.(CooccurrenceEdge), true
}

// Neighbors returns the ids adjacent to id in ascending order
func (c *CooccurrenceGraph) Neighbors(id int64) []int64 {
	var out []int64
	it := c.g.From(id)
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns every edge ordered by (source, target) with source < target
func (c *CooccurrenceGraph) Edges() []CooccurrencePair {
	var out []CooccurrencePair
	for _, n := range c.Nodes() {
		for _, m := range c.Neighbors(n.id) {
			if m <= n.id {
				continue
			}
			e, _ := c.Edge(n.id, m)
			out = append(out, CooccurrencePair{
				Source:      n.id,
				Target:      m,
				SourceLabel: e.F.Label,
				TargetLabel: e.T.Label,
				RawCount:    e.RawCount,
				Weight:      e.W,
			})
		}
	}
	return out
}

// EdgeCount returns the number of retained edges
func (c *CooccurrenceGraph) EdgeCount() int {
	return len(c.Edges())
}
