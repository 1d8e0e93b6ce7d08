package cover

// Greedy returns a cover of the reduced instance built by repeatedly taking
// the column that covers the most uncovered rows, lowest index first on
// ties. The result is a list of reduced column indices.
func Greedy(r *Reduction) []int {
	covered := newBitset(r.Rows())
	left := r.Rows()
	var chosen []int
	for left > 0 {
		best, bestGain := -1, 0
		for ci, rows := range r.ColRows {
			gain := 0
			for _, ri := range rows {
				if !covered.has(ri) {
					gain++
				}
			}
			if gain > bestGain {
				best, bestGain = ci, gain
			}
		}
		if best < 0 {
			return nil
		}
		chosen = append(chosen, best)
		for _, ri := range r.ColRows[best] {
			if !covered.has(ri) {
				covered.set(ri)
				left--
			}
		}
	}
	return chosen
}
