package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Ranking Evaluation ===\n")
	if r.Meta.ExperimentDir != "" {
		fmt.Fprintf(tw, "Experiment: %s\n", r.Meta.ExperimentDir)
	}

	writeSummaryTable(tw, r)
	for i := range r.Jobs {
		jr := &r.Jobs[i]
		if len(jr.PerRow) > 0 {
			writePerRowTable(tw, jr)
		}
	}

	tw.Flush()
}

func writeSummaryTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "\nMean over rows\n\n")

	header := []string{"Job", "Shape", "k", "P@k", "R@k", "Train", "p50", "Stddev", "Status"}
	writeRow(tw, header)
	writeRow(tw, separator(len(header)))

	for _, jr := range r.Jobs {
		shape := fmt.Sprintf("%dx%d", jr.Rows, jr.Cols)
		if jr.Error != "" {
			writeRow(tw, []string{jr.JobName, shape, "-", "-", "-", "-", "-", "-", "ERR: " + jr.Error})
			continue
		}
		for _, s := range jr.Scores {
			writeRow(tw, []string{
				jr.JobName,
				shape,
				fmt.Sprintf("%d", s.K),
				fmt.Sprintf("%.4f", s.Precision),
				fmt.Sprintf("%.4f", s.Recall),
				fmtBool(jr.TrainExcluded),
				fmtDuration(jr.Latency.P50()),
				fmtDuration(jr.Latency.Stddev),
				"OK",
			})
		}
	}

	fmt.Fprintln(tw)
}

func writePerRowTable(tw *tabwriter.Writer, jr *JobReport) {
	fmt.Fprintf(tw, "Per-row results: %s\n\n", jr.JobName)

	header := []string{"Row"}
	for _, s := range jr.Scores {
		header = append(header, fmt.Sprintf("P@%d", s.K))
	}
	for _, s := range jr.Scores {
		header = append(header, fmt.Sprintf("R@%d", s.K))
	}
	writeRow(tw, header)
	writeRow(tw, separator(len(header)))

	for _, e := range jr.PerRow {
		row := []string{fmt.Sprintf("%d", e.Row)}
		for _, p := range e.Precision {
			row = append(row, fmt.Sprintf("%.4f", p))
		}
		for _, rc := range e.Recall {
			row = append(row, fmt.Sprintf("%.4f", rc))
		}
		writeRow(tw, row)
	}

	fmt.Fprintln(tw)
}

func writeRow(tw *tabwriter.Writer, cells []string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func separator(n int) []string {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	return sep
}

func fmtBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
