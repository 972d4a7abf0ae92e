package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/report"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/experiment"
	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/factory"
	"github.com/DjordjeVuckovic/rankeval/pkg/config/env"
)

const reportFileName = "report.json"

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliConfig, out io.Writer) error {
	es, err := cfg.loadSpec()
	if err != nil {
		return err
	}

	var (
		store       storage.RunStore
		storageType storage.Type
	)
	if cfg.Store {
		var cleanup func()
		store, storageType, cleanup, err = openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	exp, err := experiment.Setup(experiment.Config{
		ModelDir: es.Experiment.ModelDir,
		GPU:      es.Experiment.GPU,
		CopyDirs: es.Experiment.CopyDirs,
	}, es, slog.Default())
	if err != nil {
		return fmt.Errorf("experiment setup: %w", err)
	}

	r := runner.New(runner.ConfigFromSpec(es))
	result, err := r.RunAll(ctx, es)
	if err != nil {
		return err
	}

	if err := outputReport(result, exp, cfg.Output, out); err != nil {
		return err
	}

	if store != nil {
		if err := persistRuns(ctx, store, storageType, result); err != nil {
			return err
		}
	}

	if n := result.ErrorCount(); n > 0 {
		return fmt.Errorf("%d of %d jobs failed", n, len(result.Jobs))
	}
	return nil
}

// outputReport prints the table and writes the JSON report to outputPath, or
// into the experiment dir when only that is set.
func outputReport(result *runner.BenchmarkResult, exp *experiment.Experiment, outputPath string, out io.Writer) error {
	rpt := report.Generate(result)
	rpt.Meta.ExperimentDir = exp.Dir
	rpt.Meta.Devices = exp.Devices

	report.WriteTable(rpt, out)

	if outputPath == "" && exp.Dir != "" {
		outputPath = filepath.Join(exp.Dir, reportFileName)
	}
	if outputPath == "" {
		return nil
	}

	if err := report.WriteJSON(rpt, outputPath); err != nil {
		return err
	}
	slog.Info("Report written", "path", outputPath)
	return nil
}

// errEphemeralStore is returned for -store when STORAGE_TYPE resolves to the
// in-memory store, whose runs would vanish with the process.
var errEphemeralStore = errors.New("-store requires STORAGE_TYPE pg or es, in_mem runs do not outlive the process")

// openStore resolves the run store before any job runs so a bad storage
// setup fails fast.
func openStore(ctx context.Context) (storage.RunStore, storage.Type, func(), error) {
	if err := env.LoadDotEnv(".env"); err != nil {
		slog.Debug("Skipping .env ...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, "", nil, err
	}
	if storageCfg.Type == storage.Memory {
		return nil, "", nil, errEphemeralStore
	}

	store, cleanup, err := factory.NewRunStore(ctx, storageCfg)
	if err != nil {
		return nil, "", nil, fmt.Errorf("create run store: %w", err)
	}
	return store, storageCfg.Type, cleanup, nil
}

func persistRuns(ctx context.Context, store storage.RunStore, storageType storage.Type, result *runner.BenchmarkResult) error {
	for _, jr := range result.Jobs {
		if jr.Failed() {
			continue
		}
		run := storage.NewRun(jr.JobName, jr.Shape, jr.Offset, jr.TrainExcluded, jr.Summary)
		run.ID = jr.RunID
		if _, err := store.Save(ctx, run); err != nil {
			return fmt.Errorf("save run %s: %w", jr.JobName, err)
		}
		slog.Info("Run stored", "job", jr.JobName, "run_id", jr.RunID, "storage", storageType)
	}
	return nil
}
