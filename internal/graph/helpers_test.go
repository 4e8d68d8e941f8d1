package graph

import (
	"fmt"
	"math"
)

// vocab builds WordInfo values with ids 1..n in the order given.
func vocab(labels ...string) []WordInfo {
	words := make([]WordInfo, len(labels))
	for i, l := range labels {
		words[i] = WordInfo{ID: int64(i + 1), Label: l}
	}
	return words
}

// pairGraph builds a co-occurrence graph where every pair is its own
// sentence, keeping every edge regardless of weight.
func pairGraph(pairs ...[2]int64) *CooccurrenceGraph {
	labels := make(map[int64]string)
	sentences := make([][]int64, 0, len(pairs))
	for _, p := range pairs {
		labels[p[0]] = fmt.Sprintf("w%d", p[0])
		labels[p[1]] = fmt.Sprintf("w%d", p[1])
		sentences = append(sentences, []int64{p[0], p[1]})
	}
	return BuildCooccurrenceGraph(sentences, labels, math.Inf(-1))
}

// clique returns every pair of ids.
func clique(ids ...int64) [][2]int64 {
	var out [][2]int64
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			out = append(out, [2]int64{a, b})
		}
	}
	return out
}
