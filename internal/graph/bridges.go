package graph

import "sort"

// ArticulationPoint is a word whose removal disconnects the graph
type ArticulationPoint struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Degree int    `json:"degree"`
}

// BridgeEdge is an edge whose removal disconnects the graph
type BridgeEdge struct {
	SourceID    int64  `json:"source_id"`
	TargetID    int64  `json:"target_id"`
	SourceLabel string `json:"source_label"`
	TargetLabel string `json:"target_label"`
}

// FragileConnection represents two communities joined by very few edges
type FragileConnection struct {
	CommunityA int `json:"community_a"`
	CommunityB int `json:"community_b"`
	CrossEdges int `json:"cross_edges"`
}

// BridgeReport contains bridge analysis results
type BridgeReport struct {
	ArticulationPoints []ArticulationPoint `json:"articulation_points"`
	BridgeEdges        []BridgeEdge        `json:"bridge_edges"`
	FragileConnections []FragileConnection `json:"fragile_connections"`
	APCount            int                 `json:"ap_count"`
	BridgeCount        int                 `json:"bridge_count"`
}

// ComputeBridges finds articulation words, bridge edges and community pairs
// joined by at most two edges. part may be nil to skip the community check.
func ComputeBridges(cg *CooccurrenceGraph, part Partition) *BridgeReport {
	nodes := cg.Nodes()
	if len(nodes) == 0 {
		return &BridgeReport{}
	}

	n := len(nodes)
	idToIdx := make(map[int64]int, n)
	for i, node := range nodes {
		idToIdx[node.id] = i
	}
	adjIdx := make([][]int, n)
	for i, node := range nodes {
		for _, nb := range cg.Neighbors(node.id) {
			adjIdx[i] = append(adjIdx[i], idToIdx[nb])
		}
	}

	disc := make([]int, n)
	low := make([]int, n)
	visited := make([]bool, n)
	isAP := make([]bool, n)
	var bridgePairs [][2]int
	counter := 1

	const noParent = -1

	// Iterative Tarjan for each connected component
	type frame struct {
		node, parent, ni int
	}

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		visited[start] = true
		disc[start] = counter
		low[start] = counter
		counter++

		stack := []frame{{start, noParent, 0}}
		rootChildren := 0

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			node := top.node

			if top.ni < len(adjIdx[node]) {
				child := adjIdx[node][top.ni]
				top.ni++

				if child == top.parent {
					continue
				}

				if visited[child] {
					low[node] = min(low[node], disc[child])
					continue
				}

				visited[child] = true
				disc[child] = counter
				low[child] = counter
				counter++
				if node == start {
					rootChildren++
				}
				stack = append(stack, frame{child, node, 0})
				continue
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				break
			}
			pn := stack[len(stack)-1].node
			low[pn] = min(low[pn], low[node])
			if low[node] > disc[pn] {
				bridgePairs = append(bridgePairs, [2]int{pn, node})
			}
			if pn != start && low[node] >= disc[pn] {
				isAP[pn] = true
			}
		}

		// Root is AP if 2+ tree children
		if rootChildren >= 2 {
			isAP[start] = true
		}
	}

	var aps []ArticulationPoint
	for i, node := range nodes {
		if isAP[i] {
			aps = append(aps, ArticulationPoint{ID: node.id, Label: node.Label, Degree: len(adjIdx[i])})
		}
	}
	sort.SliceStable(aps, func(i, j int) bool { return aps[i].Degree > aps[j].Degree })

	var bridges []BridgeEdge
	for _, pair := range bridgePairs {
		u, v := nodes[pair[0]], nodes[pair[1]]
		if u.id > v.id {
			u, v = v, u
		}
		bridges = append(bridges, BridgeEdge{
			SourceID:    u.id,
			TargetID:    v.id,
			SourceLabel: u.Label,
			TargetLabel: v.Label,
		})
	}
	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].SourceID != bridges[j].SourceID {
			return bridges[i].SourceID < bridges[j].SourceID
		}
		return bridges[i].TargetID < bridges[j].TargetID
	})

	return &BridgeReport{
		ArticulationPoints: aps,
		BridgeEdges:        bridges,
		FragileConnections: fragileConnections(cg, part),
		APCount:            len(aps),
		BridgeCount:        len(bridges),
	}
}

func fragileConnections(cg *CooccurrenceGraph, part Partition) []FragileConnection {
	if part == nil {
		return nil
	}
	pairCounts := make(map[[2]int]int)
	for _, e := range cg.Edges() {
		ca, okA := part[e.Source]
		cb, okB := part[e.Target]
		if !okA || !okB || ca == cb {
			continue
		}
		if ca > cb {
			ca, cb = cb, ca
		}
		pairCounts[[2]int{ca, cb}]++
	}

	var fragile []FragileConnection
	for pair, count := range pairCounts {
		if count <= 2 {
			fragile = append(fragile, FragileConnection{CommunityA: pair[0], CommunityB: pair[1], CrossEdges: count})
		}
	}
	sort.Slice(fragile, func(i, j int) bool {
		if fragile[i].CrossEdges != fragile[j].CrossEdges {
			return fragile[i].CrossEdges < fragile[j].CrossEdges
		}
		if fragile[i].CommunityA != fragile[j].CommunityA {
			return fragile[i].CommunityA < fragile[j].CommunityA
		}
		return fragile[i].CommunityB < fragile[j].CommunityB
	})
	return fragile
}
