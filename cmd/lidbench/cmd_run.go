package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spirit-guess/lidbench/internal/corpus"
	"github.com/spirit-guess/lidbench/internal/detectors"
	"github.com/spirit-guess/lidbench/internal/evaluation"
	"github.com/spirit-guess/lidbench/internal/langcodes"
	"github.com/spirit-guess/lidbench/internal/projectconfig"
	"github.com/spirit-guess/lidbench/internal/reporting"
	"github.com/spirit-guess/lidbench/internal/sampling"
	"github.com/spirit-guess/lidbench/internal/spinner"
)

var (
	corpusPath    string
	hubDataset    string
	hubConfigName string
	hubSplit      string
	detectorNames []string
	rowLimit      int
	samplePerLang int
	seed          int64
	outputPath    string
	interpret     bool
	format        string
	runVerbose    bool
)

// detectorResult pairs a detector identifier with its evaluation result.
type detectorResult struct {
	name   string
	result *evaluation.Result
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a language-identification benchmark",
		Long: `Run a detector over the corpus and report accuracy.

The corpus comes from --corpus (a local JSONL/CSV file, optionally
gzip/zstd compressed) or --dataset (a Hugging Face dataset streamed page by
page). Rows whose tags cannot be reconciled with the detector's code space
are counted as skipped, not guessed.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Path to a local corpus file (jsonl/csv, .gz/.zst ok)")
	cmd.Flags().StringVar(&hubDataset, "dataset", "", "Hugging Face dataset to stream (default from config)")
	cmd.Flags().StringVar(&hubConfigName, "dataset-config", "", "Dataset config name")
	cmd.Flags().StringVar(&hubSplit, "split", "", "Dataset split")
	cmd.Flags().StringArrayVarP(&detectorNames, "detector", "d", nil,
		fmt.Sprintf("Detector to evaluate (one of: %s; can be repeated for comparison)", strings.Join(detectors.Names, ", ")))
	cmd.Flags().IntVar(&rowLimit, "limit", 0, "Max rows to load from the corpus (0 = all)")
	cmd.Flags().IntVar(&samplePerLang, "sample-per-lang", 0, "Max samples per language for balanced eval (0 = all)")
	cmd.Flags().Int64Var(&seed, "seed", projectconfig.DefaultSeed, "Random seed for sampling")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for results")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().StringVar(&format, "format", "default", "Output format: default, markdown")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Verbose output with per-chunk progress")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, cfg)

	if rowLimit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", rowLimit)
	}
	if samplePerLang < 0 {
		return fmt.Errorf("--sample-per-lang must be non-negative, got %d", samplePerLang)
	}
	if format != "default" && format != "markdown" {
		return fmt.Errorf("unknown output format: %s (supported: default, markdown)", format)
	}
	if len(detectorNames) == 0 {
		detectorNames = []string{cfg.Defaults.Detector}
	}

	provider, sourceName, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	overrides := langcodes.MergeOverrides(langcodes.DefaultOverrides(), cfg.Overrides)

	// Stream the corpus once; reconciliation differs per detector, so raw
	// records are shared across a multi-detector run.
	ctx := context.Background()
	fmt.Printf("Streaming %s...\n", sourceName)
	stop := spinner.Start(os.Stderr, "loading corpus")
	records, err := corpus.Collect(ctx, provider, rowLimit, func(loaded int) {
		fmt.Printf("  loaded %d rows...\n", loaded)
	})
	stop()
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	tags := distinctTags(records)
	fmt.Printf("Total rows loaded: %d\n", len(records))
	fmt.Printf("Unique tags in data: %d\n", len(tags))

	var allResults []detectorResult
	var persistErr error

	for _, name := range detectorNames {
		result, err := runSingleDetector(ctx, name, records, tags, overrides, cfg)
		if err != nil {
			var pe *PersistenceError
			if errors.As(err, &pe) {
				// Results were printed; finish remaining detectors before
				// surfacing the persistence failure.
				persistErr = err
				continue
			}
			return err
		}
		allResults = append(allResults, detectorResult{name: name, result: result})
	}

	if len(detectorNames) > 1 && len(allResults) > 0 {
		printComparison(allResults)
	}

	return persistErr
}

// applyConfigDefaults fills flag values from the project config for flags
// the user did not set explicitly. CLI flags always win.
func applyConfigDefaults(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) {
	flags := cmd.Flags()
	if !flags.Changed("corpus") && cfg.Corpus.Path != "" {
		corpusPath = cfg.Corpus.Path
	}
	if !flags.Changed("dataset") {
		hubDataset = cfg.Corpus.Dataset
	}
	if !flags.Changed("dataset-config") {
		hubConfigName = cfg.Corpus.Config
	}
	if !flags.Changed("split") {
		hubSplit = cfg.Corpus.Split
	}
	if !flags.Changed("limit") && cfg.Defaults.Limit > 0 {
		rowLimit = cfg.Defaults.Limit
	}
	if !flags.Changed("sample-per-lang") && cfg.Defaults.SamplePerLang > 0 {
		samplePerLang = cfg.Defaults.SamplePerLang
	}
	if !flags.Changed("seed") && cfg.Defaults.Seed != nil {
		seed = *cfg.Defaults.Seed
	}
	if !flags.Changed("verbose") && cfg.Defaults.Verbose != nil {
		runVerbose = *cfg.Defaults.Verbose
	}
}

func buildProvider(cfg *projectconfig.ProjectConfig) (corpus.Provider, string, error) {
	if corpusPath != "" {
		return &corpus.FileProvider{Path: corpusPath}, corpusPath, nil
	}
	if hubDataset != "" {
		p := &corpus.HubProvider{
			Dataset: hubDataset,
			Config:  hubConfigName,
			Split:   hubSplit,
		}
		return p, fmt.Sprintf("%s (%s)", hubDataset, hubSplit), nil
	}
	return nil, "", fmt.Errorf("no corpus configured: pass --corpus or --dataset, or set one in %s", projectconfig.ConfigFileName)
}

func distinctTags(records []corpus.Record) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, rec := range records {
		if !seen[rec.Tag] {
			seen[rec.Tag] = true
			tags = append(tags, rec.Tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// runSingleDetector reconciles, samples, and evaluates one detector over
// the shared record set, then reports and optionally persists its result.
func runSingleDetector(ctx context.Context, name string, records []corpus.Record, tags []string, overrides map[string]string, cfg *projectconfig.ProjectConfig) (*evaluation.Result, error) {
	stop := spinner.Start(os.Stderr, fmt.Sprintf("loading %s detector", name))
	detector, err := detectors.New(name, cfg.Detectors[name])
	stop()
	if err != nil {
		return nil, err
	}

	supported := langcodes.CodeSet(detector.SupportedCodes())
	codeMap := langcodes.BuildCodeMap(tags, supported, langcodes.ISOResolver{}, overrides)

	fmt.Printf("\nTags mappable to %s: %d\n", name, len(codeMap))
	if unmapped := unmappedTags(tags, codeMap); len(unmapped) > 0 {
		fmt.Printf("Unmapped tags (%d): %s\n", len(unmapped), strings.Join(unmapped, ", "))
	}

	rows, skipped := evaluation.FilterRows(records, codeMap)
	fmt.Printf("Evaluable rows: %d (skipped %d with unmapped tags)\n", len(rows), skipped)

	if samplePerLang > 0 {
		rows = sampling.PerTag(rows, samplePerLang, seed, func(r evaluation.Row) string { return r.Tag })
		fmt.Printf("Sampled %d rows (%d/lang, %d langs)\n", len(rows), samplePerLang, distinctRowTags(rows))
	}

	fmt.Printf("\nRunning %s detector...\n", name)
	runner := evaluation.NewRunner(detector)
	if runVerbose {
		runner.OnProgress(verboseProgressListener)
	} else {
		runner.OnProgress(simpleProgressListener)
	}

	agg, elapsed, err := runner.Run(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("evaluation aborted: %w", err)
	}

	result := evaluation.BuildResult(name, agg, codeMap, skipped, elapsed)

	switch format {
	case "markdown":
		fmt.Print(reporting.FormatMarkdownReport(result))
	default:
		printSummary(result)
		if interpret {
			fmt.Println()
			fmt.Print(reporting.FormatSummaryReport(result))
		}
	}

	if outputPath != "" {
		path := outputPath
		if len(detectorNames) > 1 {
			ext := filepath.Ext(outputPath)
			path = fmt.Sprintf("%s_%s%s", strings.TrimSuffix(outputPath, ext), name, ext)
		}
		if err := result.Save(path); err != nil {
			return result, &PersistenceError{
				Message: fmt.Sprintf("results computed but not persisted: %v", err),
			}
		}
		fmt.Printf("\nFull results saved to %s\n", path)
	}

	return result, nil
}

// distinctRowTags counts the tags actually present in the evaluable rows.
// Smaller than the code map whenever a mappable tag has no rows, e.g. under
// a row limit.
func distinctRowTags(rows []evaluation.Row) int {
	seen := make(map[string]bool)
	for _, r := range rows {
		seen[r.Tag] = true
	}
	return len(seen)
}

func unmappedTags(tags []string, codeMap langcodes.CodeMap) []string {
	var unmapped []string
	for _, tag := range tags {
		if _, ok := codeMap[tag]; !ok {
			unmapped = append(unmapped, tag)
		}
	}
	return unmapped
}

func verboseProgressListener(event evaluation.ProgressEvent) {
	switch event.EventType {
	case evaluation.EventRunStart:
		fmt.Printf("Starting evaluation of %d row(s)...\n", event.TotalRows)
	case evaluation.EventProgress:
		fmt.Printf("  %d/%d (%.0f rows/sec) — accuracy so far: %.1f%%\n",
			event.Processed, event.TotalRows, event.RowsPerSec, event.AccuracySoFar*100)
	case evaluation.EventRunComplete:
		fmt.Printf("Evaluation completed in %dms\n", event.DurationMs)
	}
}

func simpleProgressListener(event evaluation.ProgressEvent) {
	if event.EventType == evaluation.EventProgress {
		fmt.Printf("  %d/%d (%.0f rows/sec) — accuracy so far: %.1f%%\n",
			event.Processed, event.TotalRows, event.RowsPerSec, event.AccuracySoFar*100)
	}
}
