package graph

import (
	"math/rand/v2"
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"phrasegraph/internal/logging"
)

// CommunityConfig parameterizes community detection
type CommunityConfig struct {
	Seed       uint64  `json:"seed"`
	Resolution float64 `json:"resolution"`
	MinSize    int     `json:"min_size"`
}

// Partition maps every node id to its community id
type Partition map[int64]int

// Groups returns community id -> member ids, members in ascending order
func (p Partition) Groups() map[int][]int64 {
	groups := make(map[int][]int64)
	for id, c := range p {
		groups[c] = append(groups[c], id)
	}
	for _, members := range groups {
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	}
	return groups
}

// CommunityIDs returns the distinct community ids in ascending order
func (p Partition) CommunityIDs() []int {
	groups := p.Groups()
	ids := make([]int, 0, len(groups))
	for c := range groups {
		ids = append(ids, c)
	}
	sort.Ints(ids)
	return ids
}

func (p Partition) clone() Partition {
	out := make(Partition, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// MergeEvent records what happened to one undersized community
type MergeEvent struct {
	Community int  `json:"community"`
	Size      int  `json:"size"`
	Target    int  `json:"target"`
	Merged    bool `json:"merged"`
}

// Partition runs Louvain modularity optimization seeded by cfg.Seed.
// Community ids are numbered by the smallest member id, so equal inputs and
// seeds give equal partitions. Every node of g gets exactly one community.
func (c *CooccurrenceGraph) Partition(cfg CommunityConfig) Partition {
	part := make(Partition, c.NodeCount())
	if c.NodeCount() == 0 {
		return part
	}
	resolution := cfg.Resolution
	if resolution <= 0 {
		resolution = 1
	}

	reduced := community.Modularize(c.modularityGraph(), resolution, rand.NewPCG(cfg.Seed, cfg.Seed))
	comms := reduced.Communities()

	groups := make([][]int64, 0, len(comms))
	for _, members := range comms {
		ids := make([]int64, 0, len(members))
		for _, n := range members {
			ids = append(ids, n.ID())
		}
		if len(ids) == 0 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		groups = append(groups, ids)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })

	for cid, ids := range groups {
		for _, id := range ids {
			part[id] = cid
		}
	}

	logging.Debug("louvain partition", "nodes", len(part), "communities", len(groups), "seed", cfg.Seed)
	return part
}

// modularityGraph copies the graph with non-negative weights. TF-IDF weights
// are used when their total is positive, raw pair counts otherwise.
func (c *CooccurrenceGraph) modularityGraph() *simple.WeightedUndirectedGraph {
	edges := c.Edges()
	total := 0.0
	for _, e := range edges {
		if e.Weight > 0 {
			total += e.Weight
		}
	}

	mg := simple.NewWeightedUndirectedGraph(0, 0)
	for _, n := range c.Nodes() {
		mg.AddNode(simple.Node(n.id))
	}
	for _, e := range edges {
		w := float64(e.RawCount)
		if total > 0 {
			w = max(e.Weight, 0)
		}
		mg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(e.Source), T: simple.Node(e.Target), W: w})
	}
	return mg
}

// MergeSmallCommunities moves every community smaller than minSize, whole,
// into the neighboring community it shares the most edges with. Sizes and
// neighbor communities are read from the input partition, never from the
// partially merged result. Ties go to the lower community id. Communities
// without any external edge stay as they are and are reported unmerged.
func (c *CooccurrenceGraph) MergeSmallCommunities(p Partition, minSize int) (Partition, []MergeEvent) {
	out := p.clone()
	groups := p.Groups()

	var events []MergeEvent
	for _, cid := range p.CommunityIDs() {
		members := groups[cid]
		if len(members) >= minSize {
			continue
		}

		links := make(map[int]int)
		for _, id := range members {
			for _, nb := range c.Neighbors(id) {
				if other, ok := p[nb]; ok && other != cid {
					links[other]++
				}
			}
		}

		ev := MergeEvent{Community: cid, Size: len(members), Target: cid}
		best := 0
		for other, n := range links {
			if n > best || (n == best && other < ev.Target) {
				best, ev.Target = n, other
			}
		}
		if best == 0 {
			logging.Warn("community left unmerged", "community", cid, "size", len(members))
			events = append(events, ev)
			continue
		}

		ev.Merged = true
		for _, id := range members {
			out[id] = ev.Target
		}
		events = append(events, ev)
	}
	return out, events
}

// Modularity returns the modularity score of p on the graph
func (c *CooccurrenceGraph) Modularity(p Partition) float64 {
	if c.NodeCount() == 0 {
		return 0
	}
	var comms [][]gonum.Node
	groups := p.Groups()
	for _, cid := range p.CommunityIDs() {
		var members []gonum.Node
		for _, id := range groups[cid] {
			members = append(members, simple.Node(id))
		}
		comms = append(comms, members)
	}
	return community.Q(c.modularityGraph(), comms, 1)
}
