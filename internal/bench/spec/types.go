package spec

import "github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"

type EvalSpec struct {
	Experiment ExperimentConfig `yaml:"experiment" json:"experiment"`
	Metrics    MetricsConfig    `yaml:"metrics" json:"metrics"`
	Runs       RunsConfig       `yaml:"runs" json:"runs"`
	Jobs       []Job            `yaml:"jobs" json:"jobs"`
}

type ExperimentConfig struct {
	ModelDir string   `yaml:"model_dir" json:"model_dir,omitempty"`
	GPU      any      `yaml:"gpu" json:"gpu,omitempty"`
	CopyDirs []string `yaml:"copy_dirs" json:"copy_dirs,omitempty"`
}

type MetricsConfig struct {
	Cutoffs metrics.Cutoffs `yaml:"cutoffs" json:"cutoffs"`
	Workers int             `yaml:"workers" json:"workers,omitempty"`
}

type RunsConfig struct {
	Warmup     int `yaml:"warmup" json:"warmup"`
	Iterations int `yaml:"iterations" json:"iterations"`
}

type Job struct {
	Name           string          `yaml:"name" json:"name"`
	Scores         string          `yaml:"scores" json:"scores"`
	Relevance      string          `yaml:"relevance" json:"relevance"`
	TrainRelevance string          `yaml:"train_relevance" json:"train_relevance,omitempty"`
	Offset         int             `yaml:"offset" json:"offset"`
	ReturnAll      bool            `yaml:"return_all" json:"return_all"`
	Cutoffs        metrics.Cutoffs `yaml:"cutoffs" json:"cutoffs,omitempty"`
}

// EffectiveCutoffs returns the job override or the spec-wide cutoffs.
func (j Job) EffectiveCutoffs(m MetricsConfig) metrics.Cutoffs {
	if len(j.Cutoffs) > 0 {
		return j.Cutoffs
	}
	return m.Cutoffs
}
