package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCliques() *CooccurrenceGraph {
	var sentences [][]int64
	for i := 0; i < 3; i++ {
		sentences = append(sentences, []int64{1, 2, 3, 4}, []int64{5, 6, 7, 8})
	}
	sentences = append(sentences, []int64{4, 5})
	labels := map[int64]string{}
	for id := int64(1); id <= 8; id++ {
		labels[id] = string(rune('a' + id - 1))
	}
	return BuildCooccurrenceGraph(sentences, labels, 0)
}

func TestPartition_TwoCliques(t *testing.T) {
	cg := twoCliques()
	part := cg.Partition(CommunityConfig{Seed: 42})

	require.Len(t, part, 8)
	for id := int64(2); id <= 4; id++ {
		assert.Equal(t, part[1], part[id])
	}
	for id := int64(6); id <= 8; id++ {
		assert.Equal(t, part[5], part[id])
	}
	assert.NotEqual(t, part[1], part[5])
	assert.Equal(t, 0, part[1], "community ids follow the smallest member id")
	assert.Equal(t, 1, part[5])
}

func TestPartition_TotalAndDeterministic(t *testing.T) {
	cg := twoCliques()
	a := cg.Partition(CommunityConfig{Seed: 7})
	b := cg.Partition(CommunityConfig{Seed: 7})
	assert.Equal(t, a, b)

	for _, n := range cg.Nodes() {
		_, ok := a[n.ID()]
		assert.True(t, ok, "node %d has no community", n.ID())
	}
	assert.Len(t, a, cg.NodeCount())
}

func TestPartition_Empty(t *testing.T) {
	cg := BuildCooccurrenceGraph(nil, nil, 0)
	assert.Empty(t, cg.Partition(CommunityConfig{Seed: 42}))
	assert.Equal(t, 0.0, cg.Modularity(Partition{}))
}

func TestMergeSmallCommunities_MostLinkedNeighbor(t *testing.T) {
	pairs := append(clique(1, 2, 3, 4, 5), clique(20, 21, 22, 23, 24)...)
	pairs = append(pairs, [2]int64{10, 11}, [2]int64{10, 1}, [2]int64{10, 2}, [2]int64{11, 3}, [2]int64{11, 20})
	cg := pairGraph(pairs...)

	part := Partition{10: 3, 11: 3}
	for _, id := range []int64{1, 2, 3, 4, 5} {
		part[id] = 7
	}
	for _, id := range []int64{20, 21, 22, 23, 24} {
		part[id] = 9
	}

	merged, events := cg.MergeSmallCommunities(part, 5)
	assert.Equal(t, 7, merged[10])
	assert.Equal(t, 7, merged[11])
	assert.Equal(t, 9, merged[20])
	require.Len(t, events, 1)
	assert.Equal(t, MergeEvent{Community: 3, Size: 2, Target: 7, Merged: true}, events[0])
	assert.Equal(t, 3, part[10], "input partition is not modified")
}

func TestMergeSmallCommunities_Idempotent(t *testing.T) {
	cg := twoCliques()
	part := cg.Partition(CommunityConfig{Seed: 42})

	merged, events := cg.MergeSmallCommunities(part, 4)
	assert.Equal(t, part, merged)
	assert.Empty(t, events)

	again, _ := cg.MergeSmallCommunities(merged, 4)
	assert.Equal(t, merged, again)
}

func TestMergeSmallCommunities_TieGoesToLowerID(t *testing.T) {
	pairs := append(clique(1, 2, 3), clique(4, 5, 6)...)
	pairs = append(pairs, [2]int64{9, 1}, [2]int64{9, 4})
	cg := pairGraph(pairs...)
	part := Partition{1: 5, 2: 5, 3: 5, 4: 2, 5: 2, 6: 2, 9: 8}

	merged, _ := cg.MergeSmallCommunities(part, 2)
	assert.Equal(t, 2, merged[9])
}

func TestMergeSmallCommunities_Unmerged(t *testing.T) {
	pairs := append(clique(1, 2, 3), [2]int64{30, 31})
	cg := pairGraph(pairs...)
	part := Partition{1: 0, 2: 0, 3: 0, 30: 1, 31: 1}

	merged, events := cg.MergeSmallCommunities(part, 3)
	assert.Equal(t, 1, merged[30])
	require.Len(t, events, 1)
	assert.False(t, events[0].Merged)
	assert.Len(t, merged, 5, "partition stays total")
}

func TestMergeSmallCommunities_UsesFrozenPartition(t *testing.T) {
	// 40 is only linked to 41, and 41 is linked to the large community.
	pairs := append(clique(1, 2, 3, 4), [2]int64{40, 41}, [2]int64{41, 1})
	cg := pairGraph(pairs...)
	part := Partition{1: 0, 2: 0, 3: 0, 4: 0, 40: 5, 41: 6}

	merged, events := cg.MergeSmallCommunities(part, 2)
	assert.Equal(t, 6, merged[40], "decided from the partition before merging")
	assert.Equal(t, 0, merged[41])
	assert.Len(t, events, 2)
}

func TestModularity(t *testing.T) {
	cg := twoCliques()
	split := cg.Partition(CommunityConfig{Seed: 42})
	assert.Greater(t, cg.Modularity(split), 0.3)

	whole := Partition{}
	for _, n := range cg.Nodes() {
		whole[n.ID()] = 0
	}
	assert.InDelta(t, 0.0, cg.Modularity(whole), 1e-9)
	assert.Greater(t, cg.Modularity(split), cg.Modularity(whole))
}

func TestDetectCommunities_Report(t *testing.T) {
	cg := twoCliques()
	themes := ThemeTable{
		{Name: "first", Keywords: []string{"a", "b"}},
		{Name: "second", Keywords: []string{"g"}},
	}
	report := DetectCommunities(cg, CommunityConfig{Seed: 42, MinSize: 2}, themes)

	require.Len(t, report.Communities, 2)
	assert.Equal(t, "first", report.Communities[0].Theme)
	assert.Equal(t, "second", report.Communities[1].Theme)
	total := 0
	for _, c := range report.Communities {
		total += c.Size
		assert.Len(t, c.Words, c.Size)
	}
	assert.Equal(t, cg.NodeCount(), total)
	assert.Equal(t, 7, report.Sentences)
	assert.Equal(t, 13, report.Edges)
	assert.InDelta(t, cg.Modularity(report.Partition), report.Modularity, 1e-12)

	// the bridge words appear in four sentences, the others in three
	assert.Equal(t, "d", report.Communities[0].Words[0])
	assert.Equal(t, "e", report.Communities[1].Words[0])
}
