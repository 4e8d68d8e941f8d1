package graph

import (
	"sort"
	"strings"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"phrasegraph/internal/logging"
)

// TransitionConfig selects which words enter the transition graph
type TransitionConfig struct {
	MinUsage   int      `json:"min_usage"`
	MaxUsage   int      `json:"max_usage"` // 0 disables the upper bound
	TopN       int      `json:"top_n"`     // 0 keeps every word inside the usage band
	Forbidden  []string `json:"forbidden"`
	EndMarkers int      `json:"end_markers"`
}

// WordNode is a vertex of the transition graph. End nodes are synthetic
// sentence-end markers with no surface form.
type WordNode struct {
	id    int64
	Label string
	Usage int
	End   bool
}

// ID implements gonum's graph.Node
func (n *WordNode) ID() int64 { return n.id }

// Successor is an outgoing transition of a word
type Successor struct {
	ID     int64
	Weight int
}

// TransitionEdge is an exported view of one directed transition
type TransitionEdge struct {
	Source      int64   `json:"source"`
	Target      int64   `json:"target"`
	SourceLabel string  `json:"source_label"`
	TargetLabel string  `json:"target_label"`
	Weight      int     `json:"weight"`
	Probability float64 `json:"probability"`
}

// TransitionGraph is the weighted directed word-succession graph.
// It is built once and read-only afterwards, so it is safe to share.
type TransitionGraph struct {
	g         *simple.WeightedDirectedGraph
	labels    map[string]int64
	ends      []int64
	selfLoops int
	maxWordID int64 // largest id of the whole vocabulary, kept or not
}

// BuildTransitionGraph keeps the words whose usage (incoming plus outgoing
// transition weight) lies in [MinUsage, MaxUsage] and the transitions
// between them. Self transitions count towards usage but are not stored.
func BuildTransitionGraph(words []WordInfo, transitions []TransitionInfo, cfg TransitionConfig) *TransitionGraph {
	usage := make(map[int64]int)
	for _, t := range transitions {
		usage[t.Source] += t.Weight
		usage[t.Target] += t.Weight
	}

	forbidden := make(map[string]bool, len(cfg.Forbidden))
	for _, w := range cfg.Forbidden {
		forbidden[strings.ToLower(w)] = true
	}

	var kept []*WordNode
	var maxWordID int64
	seen := make(map[int64]bool, len(words))
	for _, w := range words {
		maxWordID = max(maxWordID, w.ID)
		label := strings.TrimSpace(w.Label)
		if label == "" || forbidden[strings.ToLower(label)] || seen[w.ID] {
			continue
		}
		u := usage[w.ID]
		if u < cfg.MinUsage || (cfg.MaxUsage > 0 && u > cfg.MaxUsage) {
			continue
		}
		seen[w.ID] = true
		kept = append(kept, &WordNode{id: w.ID, Label: label, Usage: u})
	}

	if cfg.TopN > 0 && len(kept) > cfg.TopN {
		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].Usage != kept[j].Usage {
				return kept[i].Usage > kept[j].Usage
			}
			return kept[i].id < kept[j].id
		})
		kept = kept[:cfg.TopN]
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].id < kept[j].id })

	tg := &TransitionGraph{
		g:         simple.NewWeightedDirectedGraph(0, 0),
		labels:    make(map[string]int64, len(kept)),
		maxWordID: maxWordID,
	}
	for _, n := range kept {
		tg.g.AddNode(n)
		key := strings.ToLower(n.Label)
		if _, dup := tg.labels[key]; !dup {
			tg.labels[key] = n.id
		}
	}

	weights := make(map[[2]int64]int)
	for _, t := range transitions {
		if t.Weight <= 0 || tg.g.Node(t.Source) == nil || tg.g.Node(t.Target) == nil {
			continue
		}
		if t.Source == t.Target {
			tg.selfLoops++
			continue
		}
		weights[[2]int64{t.Source, t.Target}] += t.Weight
	}
	tg.setEdges(weights)

	logging.Debug("transition graph built",
		"words", len(words), "nodes", tg.g.Nodes().Len(), "edges", len(weights), "self_loops", tg.selfLoops)
	return tg
}

// AddEndMarkers appends n sentence-end markers after the largest vocabulary
// id, filtered words included, so a marker never shares an id with a stored
// word. The last word of sentence i is linked to marker i mod n, one weight
// unit per sentence. Ids of words outside the graph are ignored. It must be
// called before the graph is shared.
func (t *TransitionGraph) AddEndMarkers(lastWordIDs []int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	maxID := t.maxWordID
	nodes := t.g.Nodes()
	for nodes.Next() {
		if id := nodes.Node().ID(); id > maxID {
			maxID = id
		}
	}

	markers := make([]int64, n)
	for i := range markers {
		markers[i] = maxID + 1 + int64(i)
		t.g.AddNode(&WordNode{id: markers[i], End: true})
	}

	weights := make(map[[2]int64]int)
	for i, id := range lastWordIDs {
		if t.Node(id) == nil || t.IsEnd(id) {
			continue
		}
		weights[[2]int64{id, markers[i%n]}]++
	}
	t.setEdges(weights)
	t.ends = append(t.ends, markers...)

	logging.Debug("end markers added", "markers", n, "edges", len(weights))
	return markers
}

func (t *TransitionGraph) setEdges(weights map[[2]int64]int) {
	keys := make([][2]int64, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		w := weights[k]
		if prev, ok := t.Weight(k[0], k[1]); ok {
			w += prev
		}
		t.g.SetWeightedEdge(simple.WeightedEdge{F: t.g.Node(k[0]), T: t.g.Node(k[1]), W: float64(w)})
	}
}

// Graph exposes the underlying gonum graph for read-only algorithms
func (t *TransitionGraph) Graph() gonum.WeightedDirected {
	return t.g
}

// Node returns the node with the given id, or nil
func (t *TransitionGraph) Node(id int64) *WordNode {
	n, _ := t.g.Node(id).(*WordNode)
	return n
}

// Nodes returns every node ordered by id
func (t *TransitionGraph) Nodes() []*WordNode {
	var out []*WordNode
	it := t.g.Nodes()
	for it.Next() {
		out = append(out, it.Node().(*WordNode))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// NodeCount returns the number of nodes, end markers included
func (t *TransitionGraph) NodeCount() int {
	return t.g.Nodes().Len()
}

// Lookup returns the id of a surface form
func (t *TransitionGraph) Lookup(label string) (int64, bool) {
	id, ok := t.labels[strings.ToLower(label)]
	return id, ok
}

// IsEnd reports whether id is a sentence-end marker
func (t *TransitionGraph) IsEnd(id int64) bool {
	n := t.Node(id)
	return n != nil && n.End
}

// EndMarkers returns the ids of the sentence-end markers
func (t *TransitionGraph) EndMarkers() []int64 {
	return t.ends
}

// SelfLoopsDropped returns how many self transitions were left out
func (t *TransitionGraph) SelfLoopsDropped() int {
	return t.selfLoops
}

// Successors returns the outgoing transitions of id ordered by target id
func (t *TransitionGraph) Successors(id int64) []Successor {
	var out []Successor
	it := t.g.From(id)
	for it.Next() {
		to := it.Node().ID()
		w, _ := t.Weight(id, to)
		out = append(out, Successor{ID: to, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OutWeight returns the summed weight of the outgoing transitions of id
func (t *TransitionGraph) OutWeight(id int64) int {
	total := 0
	for _, s := range t.Successors(id) {
		total += s.Weight
	}
	return total
}

// Weight returns the weight of from -> to
func (t *TransitionGraph) Weight(from, to int64) (int, bool) {
	if from == to {
		return 0, false
	}
	e := t.g.WeightedEdge(from, to)
	if e == nil {
		return 0, false
	}
	return int(e.Weight()), true
}

// Edges returns every transition ordered by (source, target) with its
// probability relative to the source's outgoing weight
func (t *TransitionGraph) Edges() []TransitionEdge {
	var out []TransitionEdge
	for _, n := range t.Nodes() {
		succ := t.Successors(n.id)
		total := 0
		for _, s := range succ {
			total += s.Weight
		}
		for _, s := range succ {
			out = append(out, TransitionEdge{
				Source:      n.id,
				Target:      s.ID,
				SourceLabel: n.Label,
				TargetLabel: t.Node(s.ID).Label,
				Weight:      s.Weight,
				Probability: float64(s.Weight) / float64(total),
			})
		}
	}
	return out
}
