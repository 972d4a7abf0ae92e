package metrics

// TopK returns the column ids of the k highest scores in row. The ids are
// returned in no particular order and ties are broken arbitrarily; the only
// guarantee is that no excluded score is greater than a selected one. NaN
// scores rank below every number.
//
// buf is reused when it has enough capacity.
func TopK(row []float32, k int, buf []int) []int {
	n := len(row)
	if k <= 0 {
		return buf[:0]
	}

	idx := buf[:0]
	if cap(idx) < n {
		idx = make([]int, n)
	}
	idx = idx[:n]
	for i := range idx {
		idx[i] = i
	}

	if k >= n {
		return idx
	}

	selectTop(row, idx, k)
	return idx[:k]
}

// selectTop reorders idx so that its first k entries are the k highest-ranked.
func selectTop(row []float32, idx []int, k int) {
	lo, hi := 0, len(idx)-1
	target := k - 1

	for lo < hi {
		lt, gt := partition(row, idx, lo, hi)
		switch {
		case target < lt:
			hi = lt - 1
		case target > gt:
			lo = gt + 1
		default:
			return
		}
	}
}

// partition splits idx[lo:hi+1] around a pivot into ranks above, equal to and
// below it. It returns the bounds [lt, gt] of the equal band.
func partition(row []float32, idx []int, lo, hi int) (int, int) {
	pivot := idx[medianOfThree(row, idx, lo, lo+(hi-lo)/2, hi)]

	lt, i, gt := lo, lo, hi
	for i <= gt {
		switch {
		case ranksAbove(row, idx[i], pivot):
			idx[lt], idx[i] = idx[i], idx[lt]
			lt++
			i++
		case ranksAbove(row, pivot, idx[i]):
			idx[i], idx[gt] = idx[gt], idx[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt
}

func medianOfThree(row []float32, idx []int, a, b, c int) int {
	if ranksAbove(row, idx[a], idx[b]) {
		a, b = b, a
	}
	if ranksAbove(row, idx[b], idx[c]) {
		b = c
		if ranksAbove(row, idx[a], idx[b]) {
			b = a
		}
	}
	return b
}

func ranksAbove(row []float32, a, b int) bool {
	x, y := row[a], row[b]
	if x != x {
		return false
	}
	if y != y {
		return true
	}
	return x > y
}
