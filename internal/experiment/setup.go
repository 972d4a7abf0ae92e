package experiment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "config.json"

// Config describes the bookkeeping for one experiment run.
type Config struct {
	// ModelDir is the output directory. Empty disables all filesystem work.
	ModelDir string
	// GPU is a device selector, see SelectDevices.
	GPU any
	// CopyDirs are copied recursively into ModelDir for reproducibility.
	CopyDirs []string
	// Program is copied into ModelDir. Defaults to the running executable.
	Program string
	// Ignore overrides DefaultIgnore when non-nil.
	Ignore []string
}

type Experiment struct {
	Dir     string
	Devices Devices
	// Created is false when the program copy already existed and nothing was written.
	Created bool
}

// Setup selects devices and prepares ModelDir: it creates the directory and,
// unless the program copy is already there, copies the program, writes the
// snapshot to config.json with sorted keys and copies CopyDirs.
func Setup(cfg Config, snapshot any, logger *slog.Logger) (*Experiment, error) {
	if logger == nil {
		logger = slog.Default()
	}

	exp := &Experiment{Dir: cfg.ModelDir}

	if cfg.GPU != nil {
		devices, err := SelectDevices(cfg.GPU)
		if err != nil {
			return nil, err
		}
		exp.Devices = devices
		logger.Info("Setting device", "devices", []int(devices))
	}

	if cfg.ModelDir == "" {
		return exp, nil
	}

	if err := os.MkdirAll(cfg.ModelDir, 0755); err != nil {
		return nil, fmt.Errorf("create experiment dir: %w", err)
	}

	program := cfg.Program
	if program == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable: %w", err)
		}
		program = exe
	}
	program, err := filepath.EvalSymlinks(program)
	if err != nil {
		return nil, fmt.Errorf("resolve program path: %w", err)
	}

	programCopy := filepath.Join(cfg.ModelDir, filepath.Base(program))
	if _, err := os.Stat(programCopy); err == nil {
		logger.Info("Experiment dir already initialised", "dir", cfg.ModelDir)
		return exp, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat program copy: %w", err)
	}

	logger.Info("Copying program", "from", program, "to", programCopy)
	if err := copyFile(program, programCopy); err != nil {
		return nil, fmt.Errorf("copy program: %w", err)
	}

	if err := WriteConfig(filepath.Join(cfg.ModelDir, ConfigFileName), snapshot); err != nil {
		return nil, err
	}

	ignore := cfg.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}
	for _, d := range cfg.CopyDirs {
		target := filepath.Join(cfg.ModelDir, copyTarget(d))
		logger.Info("Copying directory", "from", d, "to", target)
		if err := copyTree(d, target, ignore, logger); err != nil {
			return nil, fmt.Errorf("copy dir %s: %w", d, err)
		}
	}

	exp.Created = true
	return exp, nil
}

// copyTarget keeps relative layouts inside the experiment dir; absolute paths
// and paths leaving the working dir are flattened to their base name.
func copyTarget(dir string) string {
	clean := filepath.Clean(dir)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return filepath.Base(clean)
	}
	return clean
}

// WriteConfig writes snapshot as indented JSON with object keys sorted.
func WriteConfig(path string, snapshot any) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// a round trip through generic values sorts struct fields like map keys;
	// json.Number keeps integers beyond float64 precision intact
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("normalise config: %w", err)
	}

	data, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
