package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelOf(tg *TransitionGraph) func(int64) string {
	return func(id int64) string { return tg.Node(id).Label }
}

func TestTopology_EmptyGraph(t *testing.T) {
	tg := BuildTransitionGraph(nil, nil, TransitionConfig{})
	r := ComputeTopology(tg.Graph(), labelOf(tg), 4, 10)
	assert.Zero(t, r.TotalNodes)
	assert.Zero(t, r.TotalEdges)
	assert.Zero(t, r.NumComponents)
	assert.Len(t, r.DegreeHistogram, 7)
}

func TestTopology_ComponentsAndIsolated(t *testing.T) {
	words := vocab("a", "b", "c", "d", "e", "f")
	transitions := []TransitionInfo{
		{Source: 1, Target: 2, Weight: 1},
		{Source: 2, Target: 3, Weight: 1},
		{Source: 4, Target: 5, Weight: 1},
	}
	tg := BuildTransitionGraph(words, transitions, TransitionConfig{})
	r := ComputeTopology(tg.Graph(), labelOf(tg), 4, 10)

	assert.Equal(t, 6, r.TotalNodes)
	assert.Equal(t, 3, r.TotalEdges)
	assert.Equal(t, 3, r.NumComponents)
	assert.Equal(t, 3, r.LargestComponent)
	assert.Equal(t, 1, r.SmallestComponent)
	assert.Equal(t, 1, r.IsolatedCount)
	assert.Equal(t, []string{"f"}, r.Isolated)

	counts := map[string]int{}
	for _, b := range r.DegreeHistogram {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, 1, counts["0"])
	assert.Equal(t, 4, counts["1"])
	assert.Equal(t, 1, counts["2-3"])
}

func TestTopology_DirectedHubs(t *testing.T) {
	words := vocab("hub", "a", "b", "c", "d")
	var transitions []TransitionInfo
	for id := int64(2); id <= 5; id++ {
		transitions = append(transitions, TransitionInfo{Source: 1, Target: id, Weight: 1})
	}
	transitions = append(transitions, TransitionInfo{Source: 2, Target: 1, Weight: 1})
	tg := BuildTransitionGraph(words, transitions, TransitionConfig{})

	r := ComputeTopology(tg.Graph(), labelOf(tg), 3, 10)
	require.Len(t, r.Hubs, 1)
	assert.Equal(t, HubNode{ID: 1, Label: "hub", Degree: 5, InDegree: 1, OutDegree: 4}, r.Hubs[0])
}

func TestTopology_UndirectedEdgeCount(t *testing.T) {
	cg := pairGraph(clique(1, 2, 3)...)
	r := ComputeTopology(cg.Graph(), func(id int64) string { return cg.Node(id).Label }, 1, 10)
	assert.Equal(t, 3, r.TotalEdges)
	assert.Equal(t, 1, r.NumComponents)
	require.Len(t, r.Hubs, 3)
	assert.Zero(t, r.Hubs[0].InDegree)
}

func TestTopology_TopNTruncation(t *testing.T) {
	tg := BuildTransitionGraph(vocab("a", "b", "c", "d"), nil, TransitionConfig{})
	r := ComputeTopology(tg.Graph(), labelOf(tg), 4, 2)
	assert.Equal(t, 4, r.IsolatedCount)
	assert.Equal(t, []string{"a", "b"}, r.Isolated)
}

func TestTopology_NegativeTopN(t *testing.T) {
	tg := BuildTransitionGraph(vocab("a", "b"), nil, TransitionConfig{})
	r := ComputeTopology(tg.Graph(), labelOf(tg), 0, -1)
	assert.Equal(t, 2, r.IsolatedCount)
	assert.Empty(t, r.Isolated)
	assert.Empty(t, r.Hubs)
}

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind([]int64{1, 2, 3, 4})
	assert.True(t, uf.Union(1, 2))
	assert.True(t, uf.Union(3, 2))
	assert.False(t, uf.Union(1, 3))
	assert.Equal(t, uf.Find(1), uf.Find(3))
	assert.NotEqual(t, uf.Find(1), uf.Find(4))
	assert.Equal(t, 3, uf.Size(2))
	assert.Len(t, uf.Components(), 2)
}
