package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
)

const Version = "1"

type Report struct {
	Meta   Meta         `json:"meta"`
	Config ReportConfig `json:"config"`
	Jobs   []JobReport  `json:"jobs"`
}

type Meta struct {
	Version       string          `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	ExperimentDir string          `json:"experiment_dir,omitempty"`
	Devices       []int           `json:"devices,omitempty"`
	Environment   EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type ReportConfig struct {
	Cutoffs    []int `json:"cutoffs"`
	Workers    int   `json:"workers,omitempty"`
	WarmupRuns int   `json:"warmup_runs"`
	Runs       int   `json:"runs"`
}

type JobReport struct {
	RunID         string              `json:"run_id"`
	JobName       string              `json:"job_name"`
	Rows          int                 `json:"rows"`
	Cols          int                 `json:"cols"`
	Offset        int                 `json:"offset"`
	TrainExcluded bool                `json:"train_excluded"`
	Scores        []CutoffScore       `json:"scores,omitempty"`
	PerRow        []RowEntry          `json:"per_row,omitempty"`
	Latency       runner.LatencyStats `json:"latency"`
	Error         string              `json:"error,omitempty"`
}

// CutoffScore is the mean precision and recall at one cutoff.
type CutoffScore struct {
	K         int     `json:"k"`
	Precision float32 `json:"precision"`
	Recall    float32 `json:"recall"`
}

// RowEntry holds one matrix row's values, indexed like JobReport.Scores.
type RowEntry struct {
	Row       int       `json:"row"`
	Precision []float32 `json:"precision"`
	Recall    []float32 `json:"recall"`
}
