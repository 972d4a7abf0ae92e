package metrics

// Result holds per-row scores with shape (len(Cutoffs), rows).
type Result struct {
	Cutoffs   Cutoffs     `json:"cutoffs"`
	Precision [][]float32 `json:"precision"`
	Recall    [][]float32 `json:"recall"`
}

// Summary holds one mean value per cutoff.
type Summary struct {
	Cutoffs   Cutoffs   `json:"cutoffs"`
	Precision []float32 `json:"precision"`
	Recall    []float32 `json:"recall"`
}

func newResult(cutoffs Cutoffs, rows int) *Result {
	res := &Result{
		Cutoffs:   append(Cutoffs(nil), cutoffs...),
		Precision: make([][]float32, len(cutoffs)),
		Recall:    make([][]float32, len(cutoffs)),
	}
	for c := range cutoffs {
		res.Precision[c] = make([]float32, rows)
		res.Recall[c] = make([]float32, rows)
	}
	return res
}

func (r *Result) Rows() int {
	if len(r.Precision) == 0 {
		return 0
	}
	return len(r.Precision[0])
}

// Mean averages every cutoff over rows. Rows with empty relevance count as 0.
// A result without rows averages to 0.
func (r *Result) Mean() Summary {
	s := Summary{
		Cutoffs:   append(Cutoffs(nil), r.Cutoffs...),
		Precision: make([]float32, len(r.Cutoffs)),
		Recall:    make([]float32, len(r.Cutoffs)),
	}
	for c := range r.Cutoffs {
		s.Precision[c] = mean(r.Precision[c])
		s.Recall[c] = mean(r.Recall[c])
	}
	return s
}

func mean(vals []float32) float32 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += float64(v)
	}
	return float32(sum / float64(len(vals)))
}
