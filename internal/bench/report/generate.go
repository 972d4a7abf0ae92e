package report

import (
	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
)

func Generate(br *runner.BenchmarkResult) *Report {
	r := &Report{
		Meta: Meta{
			Version:     Version,
			Timestamp:   br.StartedAt,
			Environment: NewEnvironmentInfo(),
		},
		Config: ReportConfig{
			Cutoffs:    br.Config.Cutoffs,
			Workers:    br.Config.Workers,
			WarmupRuns: br.Config.WarmupRuns,
			Runs:       br.Config.Runs,
		},
	}

	for _, jr := range br.Jobs {
		r.Jobs = append(r.Jobs, jobReport(jr))
	}
	return r
}

func jobReport(jr *runner.JobResult) JobReport {
	e := JobReport{
		RunID:         jr.RunID.String(),
		JobName:       jr.JobName,
		Rows:          jr.Shape[0],
		Cols:          jr.Shape[1],
		Offset:        jr.Offset,
		TrainExcluded: jr.TrainExcluded,
		Latency:       jr.Latency,
	}
	if jr.Failed() {
		e.Error = jr.Error.Error()
		return e
	}

	for c, k := range jr.Summary.Cutoffs {
		e.Scores = append(e.Scores, CutoffScore{
			K:         k,
			Precision: jr.Summary.Precision[c],
			Recall:    jr.Summary.Recall[c],
		})
	}

	if jr.PerRow != nil {
		rows := jr.PerRow.Rows()
		e.PerRow = make([]RowEntry, rows)
		for row := 0; row < rows; row++ {
			entry := RowEntry{
				Row:       row + jr.Offset,
				Precision: make([]float32, len(jr.PerRow.Cutoffs)),
				Recall:    make([]float32, len(jr.PerRow.Cutoffs)),
			}
			for c := range jr.PerRow.Cutoffs {
				entry.Precision[c] = jr.PerRow.Precision[c][row]
				entry.Recall[c] = jr.PerRow.Recall[c][row]
			}
			e.PerRow[row] = entry
		}
	}
	return e
}
