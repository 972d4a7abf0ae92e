package main

import (
	"flag"
	"fmt"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/spec"
	"github.com/DjordjeVuckovic/rankeval/pkg/utils"
)

const quickJobName = "quick"

type cliConfig struct {
	SpecPath       string
	Scores         string
	Relevance      string
	TrainRelevance string
	KValues        string
	Offset         int
	ReturnAll      bool
	Workers        int
	Warmup         int
	Runs           int
	Output         string
	ModelDir       string
	GPU            string
	CopyDirs       string
	Store          bool
	Verbose        bool
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{}
	fs := flag.NewFlagSet("rankeval", flag.ContinueOnError)

	fs.StringVar(&cfg.SpecPath, "spec", "", "Path to eval spec YAML (multi-job mode)")
	fs.StringVar(&cfg.Scores, "scores", "", "Scores matrix file, .json or .csv (quick mode)")
	fs.StringVar(&cfg.Relevance, "relevance", "", "Relevance file, .json or .csv (quick mode)")
	fs.StringVar(&cfg.TrainRelevance, "train-relevance", "", "Training relevance excluded from the top-k window (quick mode)")
	fs.StringVar(&cfg.KValues, "k", "", "Cutoffs, comma-separated (default 5,10,20)")
	fs.IntVar(&cfg.Offset, "offset", 0, "Relevance index of the first score row (quick mode)")
	fs.BoolVar(&cfg.ReturnAll, "all", false, "Report per-row values (quick mode)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Rows evaluated in parallel (0 uses GOMAXPROCS)")
	fs.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup runs before measurement")
	fs.IntVar(&cfg.Runs, "runs", 0, "Number of measured iterations (0 keeps the spec value)")
	fs.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	fs.StringVar(&cfg.ModelDir, "model-dir", "", "Experiment directory for config snapshot and copies")
	fs.StringVar(&cfg.GPU, "gpu", "", "Device ids, comma-separated")
	fs.StringVar(&cfg.CopyDirs, "copy-dirs", "", "Directories copied into the experiment dir, comma-separated")
	fs.BoolVar(&cfg.Store, "store", false, "Persist run summaries to the store selected by STORAGE_TYPE")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadSpec reads -spec or builds a single-job spec from the quick mode flags.
// Experiment and cutoff flags override the spec file.
func (c cliConfig) loadSpec() (*spec.EvalSpec, error) {
	var es *spec.EvalSpec
	if c.SpecPath != "" {
		loaded, err := spec.LoadFromFile(c.SpecPath)
		if err != nil {
			return nil, fmt.Errorf("load spec %s: %w", c.SpecPath, err)
		}
		es = loaded
	} else {
		if c.Scores == "" || c.Relevance == "" {
			return nil, fmt.Errorf("quick mode requires -scores and -relevance, or use -spec")
		}
		es = &spec.EvalSpec{
			Jobs: []spec.Job{{
				Name:           quickJobName,
				Scores:         c.Scores,
				Relevance:      c.Relevance,
				TrainRelevance: c.TrainRelevance,
				Offset:         c.Offset,
				ReturnAll:      c.ReturnAll,
			}},
		}
	}

	if c.KValues != "" {
		cutoffs, err := metrics.ParseCutoffs(c.KValues)
		if err != nil {
			return nil, fmt.Errorf("invalid -k: %w", err)
		}
		es.Metrics.Cutoffs = cutoffs
		// -k wins over per-job cutoffs too.
		for i := range es.Jobs {
			es.Jobs[i].Cutoffs = nil
		}
	}
	if c.Workers > 0 {
		es.Metrics.Workers = c.Workers
	}
	if c.Warmup > 0 {
		es.Runs.Warmup = c.Warmup
	}
	if c.Runs > 0 {
		es.Runs.Iterations = c.Runs
	}
	if c.ModelDir != "" {
		es.Experiment.ModelDir = c.ModelDir
	}
	if c.GPU != "" {
		es.Experiment.GPU = c.GPU
	}
	if dirs := utils.SplitNonEmpty(c.CopyDirs, ","); len(dirs) > 0 {
		es.Experiment.CopyDirs = dirs
	}

	if err := spec.Validate(es); err != nil {
		return nil, err
	}
	return es, nil
}
