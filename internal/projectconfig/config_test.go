package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNoConfigFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultDetector, cfg.Defaults.Detector)
	require.NotNil(t, cfg.Defaults.Seed)
	assert.Equal(t, DefaultSeed, *cfg.Defaults.Seed)
	require.NotNil(t, cfg.Defaults.Verbose)
	assert.False(t, *cfg.Defaults.Verbose)
	assert.Equal(t, DefaultHubDataset, cfg.Corpus.Dataset)
	assert.Equal(t, DefaultHubConfig, cfg.Corpus.Config)
	assert.Equal(t, DefaultHubSplit, cfg.Corpus.Split)
	assert.Equal(t, DefaultResultsDir, cfg.ResultsDir)
	assert.Empty(t, cfg.Corpus.Path)
}

func TestLoadParsesAndMerges(t *testing.T) {
	dir := t.TempDir()
	content := `corpus:
  path: data/corpus.jsonl
defaults:
  detector: whatlang
  limit: 5000
  seed: 7
overrides:
  arb: ar
  nso: ""
detectors:
  lingua:
    low_accuracy: true
results_dir: out/
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "data/corpus.jsonl", cfg.Corpus.Path)
	// Fields the file doesn't set keep their defaults.
	assert.Equal(t, DefaultHubDataset, cfg.Corpus.Dataset)
	assert.Equal(t, "whatlang", cfg.Defaults.Detector)
	assert.Equal(t, 5000, cfg.Defaults.Limit)
	require.NotNil(t, cfg.Defaults.Seed)
	assert.Equal(t, int64(7), *cfg.Defaults.Seed)
	assert.Equal(t, map[string]string{"arb": "ar", "nso": ""}, cfg.Overrides)
	require.Contains(t, cfg.Detectors, "lingua")
	assert.Equal(t, true, cfg.Detectors["lingua"]["low_accuracy"])
	assert.Equal(t, "out/", cfg.ResultsDir)
}

func TestLoadZeroSeedFromFileWins(t *testing.T) {
	dir := t.TempDir()
	content := "defaults:\n  seed: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Seed)
	assert.Equal(t, int64(0), *cfg.Defaults.Seed, "an explicit zero seed must not fall back to the default")
}

func TestLoadWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("defaults:\n  detector: stub\n"), 0644))

	cfg, err := Load(nested)
	require.NoError(t, err)

	assert.Equal(t, "stub", cfg.Defaults.Detector)
}

func TestLoadNearestConfigWins(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("defaults:\n  detector: stub\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, ConfigFileName), []byte("defaults:\n  detector: whatlang\n"), 0644))

	cfg, err := Load(nested)
	require.NoError(t, err)

	assert.Equal(t, "whatlang", cfg.Defaults.Detector)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("corpus: [unclosed"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
}
