package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spirit-guess/lidbench/internal/corpus"
	"github.com/spirit-guess/lidbench/internal/evaluation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The stub detector echoes the code prefix of each text, so a tiny CSV
// corpus exercises the whole pipeline deterministically: reconciliation
// (arb→ar, swh→sw, xyz unmapped), evaluation, and persistence.
func writeStubCorpus(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "corpus.csv")
	content := "text,tag\n" +
		"ar:nass arabi,arb\n" +
		"zz:mystery text,xyz\n" +
		"sw:habari gani,swh\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	corpusFile := writeStubCorpus(t, dir)
	outFile := filepath.Join(dir, "out.json")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"run",
		"--corpus", corpusFile,
		"--detector", "stub",
		"--seed", "7",
		"--output", outFile,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var res evaluation.Result
	require.NoError(t, json.Unmarshal(data, &res))

	assert.Equal(t, "stub", res.Detector)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 1.0, res.OverallAccuracy)
	assert.Equal(t, 1, res.SkippedUnmapped)
	assert.Equal(t, 2, res.LanguagesEvaluated)
	assert.Contains(t, res.PerLanguage, "arb")
	assert.Contains(t, res.PerLanguage, "swh")
	assert.NotContains(t, res.PerLanguage, "xyz")
	assert.Equal(t, "ar", res.PerLanguage["arb"].DetectorCode)
}

func TestRunCommandMultiDetectorOutputSuffix(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	corpusFile := writeStubCorpus(t, dir)
	outFile := filepath.Join(dir, "bench.json")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"run",
		"--corpus", corpusFile,
		"--detector", "stub",
		"--detector", "stub",
		"--output", outFile,
	})
	require.NoError(t, cmd.Execute())

	// Both runs write detector-suffixed files; the bare path stays unused.
	assert.NoFileExists(t, outFile)
	assert.FileExists(t, filepath.Join(dir, "bench_stub.json"))
}

func TestRunCommandSamplePerLang(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "corpus.csv")
	content := "text,tag\n"
	for range 10 {
		content += "ar:nass,arb\n"
		content += "sw:habari,swh\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	outFile := filepath.Join(dir, "out.json")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"run",
		"--corpus", path,
		"--detector", "stub",
		"--sample-per-lang", "3",
		"--seed", "42",
		"--output", outFile,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var res evaluation.Result
	require.NoError(t, json.Unmarshal(data, &res))

	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 3, res.PerLanguage["arb"].Total)
	assert.Equal(t, 3, res.PerLanguage["swh"].Total)
}

// A mappable tag with no rows under the limit must not inflate the reported
// language count.
func TestDistinctRowTags(t *testing.T) {
	rows := []evaluation.Row{
		{Record: corpus.Record{Text: "ar:a", Tag: "arb"}, Gold: "ar"},
		{Record: corpus.Record{Text: "ar:b", Tag: "arb"}, Gold: "ar"},
		{Record: corpus.Record{Text: "sw:c", Tag: "swh"}, Gold: "sw"},
	}

	assert.Equal(t, 2, distinctRowTags(rows))
	assert.Zero(t, distinctRowTags(nil))
}

func TestRunCommandConfigFileDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	corpusFile := writeStubCorpus(t, dir)
	cfg := "corpus:\n  path: " + corpusFile + "\ndefaults:\n  detector: stub\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lidbench.yaml"), []byte(cfg), 0644))
	outFile := filepath.Join(dir, "out.json")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"run", "--output", outFile})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, outFile)
}

func TestRunCommandValidation(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	corpusFile := writeStubCorpus(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"negative_limit", []string{"run", "--corpus", corpusFile, "--detector", "stub", "--limit", "-1"}},
		{"negative_sample", []string{"run", "--corpus", corpusFile, "--detector", "stub", "--sample-per-lang", "-5"}},
		{"bad_format", []string{"run", "--corpus", corpusFile, "--detector", "stub", "--format", "xml"}},
		{"unknown_detector", []string{"run", "--corpus", corpusFile, "--detector", "nope"}},
		{"missing_corpus_file", []string{"run", "--corpus", filepath.Join(dir, "nope.csv"), "--detector", "stub"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestRunCommandPersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	corpusFile := writeStubCorpus(t, dir)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"run",
		"--corpus", corpusFile,
		"--detector", "stub",
		"--output", filepath.Join(dir, "no", "such", "dir", "out.json"),
	})
	err := cmd.Execute()
	require.Error(t, err)

	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe, "a failed save after a completed run is a persistence error, not a runtime error")
}

func TestCodesCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"codes", "--detector", "stub", "arb", "eng", "xyz"})
	require.NoError(t, cmd.Execute())
}
