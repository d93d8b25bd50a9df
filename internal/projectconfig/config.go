// Package projectconfig provides the ProjectConfig struct and loader for
// .lidbench.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the discovered project config file.
const ConfigFileName = ".lidbench.yaml"

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultDetector = "lingua"
	DefaultSeed     = int64(42)

	DefaultHubDataset = "commoncrawl/CommonLID"
	DefaultHubConfig  = "default"
	DefaultHubSplit   = "test"

	DefaultResultsDir = "results/"
)

// CorpusConfig selects the corpus source. Path wins over Dataset when both
// are set.
type CorpusConfig struct {
	Path    string `yaml:"path,omitempty"`
	Dataset string `yaml:"dataset,omitempty"`
	Config  string `yaml:"config,omitempty"`
	Split   string `yaml:"split,omitempty"`
}

// DefaultsConfig holds default run parameters.
type DefaultsConfig struct {
	Detector      string `yaml:"detector,omitempty"`
	Limit         int    `yaml:"limit,omitempty"`
	SamplePerLang int    `yaml:"sample_per_lang,omitempty"`
	Seed          *int64 `yaml:"seed,omitempty"`
	Verbose       *bool  `yaml:"verbose,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .lidbench.yaml.
type ProjectConfig struct {
	Corpus   CorpusConfig   `yaml:"corpus,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	// Overrides adds to (or, with an empty value, removes from) the
	// built-in manual tag mapping.
	Overrides map[string]string `yaml:"overrides,omitempty"`
	// Detectors holds detector-specific options keyed by detector name,
	// decoded by the detector factory.
	Detectors  map[string]map[string]any `yaml:"detectors,omitempty"`
	ResultsDir string                    `yaml:"results_dir,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Corpus: CorpusConfig{
			Dataset: DefaultHubDataset,
			Config:  DefaultHubConfig,
			Split:   DefaultHubSplit,
		},
		Defaults: DefaultsConfig{
			Detector: DefaultDetector,
			Seed:     int64Ptr(DefaultSeed),
			Verbose:  boolPtr(false),
		},
		ResultsDir: DefaultResultsDir,
	}
}

// Load finds .lidbench.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .lidbench.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Corpus.Path != "" {
		dst.Corpus.Path = src.Corpus.Path
	}
	if src.Corpus.Dataset != "" {
		dst.Corpus.Dataset = src.Corpus.Dataset
	}
	if src.Corpus.Config != "" {
		dst.Corpus.Config = src.Corpus.Config
	}
	if src.Corpus.Split != "" {
		dst.Corpus.Split = src.Corpus.Split
	}

	if src.Defaults.Detector != "" {
		dst.Defaults.Detector = src.Defaults.Detector
	}
	if src.Defaults.Limit > 0 {
		dst.Defaults.Limit = src.Defaults.Limit
	}
	if src.Defaults.SamplePerLang > 0 {
		dst.Defaults.SamplePerLang = src.Defaults.SamplePerLang
	}
	if src.Defaults.Seed != nil {
		dst.Defaults.Seed = src.Defaults.Seed
	}
	if src.Defaults.Verbose != nil {
		dst.Defaults.Verbose = src.Defaults.Verbose
	}

	if len(src.Overrides) > 0 {
		dst.Overrides = src.Overrides
	}
	if len(src.Detectors) > 0 {
		dst.Detectors = src.Detectors
	}
	if src.ResultsDir != "" {
		dst.ResultsDir = src.ResultsDir
	}
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
