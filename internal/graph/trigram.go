package graph

// Trigrams counts observed (first, second, third) word id sequences
type Trigrams map[[3]int64]int

// CountTrigrams counts every window of three consecutive ids in each run
func CountTrigrams(runs [][]int64) Trigrams {
	counts := make(Trigrams)
	for _, run := range runs {
		for i := 0; i+2 < len(run); i++ {
			counts[[3]int64{run[i], run[i+1], run[i+2]}]++
		}
	}
	return counts
}

// TransitionTrigrams derives trigram counts from the graph itself: every
// path a -> b -> c contributes one count per pair of transition records.
// Used when no sentence corpus is available.
func (t *TransitionGraph) TransitionTrigrams() Trigrams {
	counts := make(Trigrams)
	for _, a := range t.Nodes() {
		for _, b := range t.Successors(a.id) {
			for _, c := range t.Successors(b.ID) {
				counts[[3]int64{a.id, b.ID, c.ID}]++
			}
		}
	}
	return counts
}
