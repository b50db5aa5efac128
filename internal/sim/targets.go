package sim

import "sort"

// AccumulateTargets sorts targets ascending by deadline age and annotates
// each with the running sum of amounts over itself and all earlier-deadline
// targets. The sort is stable, so ties on deadline age keep their input
// order. Accumulation is always recomputed from the raw amounts; completion
// flags pass through untouched. The input slice is not modified.
func AccumulateTargets(targets []Target) []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeadlineAge < out[j].DeadlineAge
	})

	var accumulated float64
	for i := range out {
		accumulated += out[i].Amount
		out[i].AccumulatedAmount = accumulated
		out[i].RemainingAmount = accumulated
	}
	return out
}
