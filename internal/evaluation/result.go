package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spirit-guess/lidbench/internal/langcodes"
	"github.com/spirit-guess/lidbench/internal/metrics"
)

// ReportedErrorSamples caps how many captured misclassifications make it
// into the persisted result.
const ReportedErrorSamples = 20

// LanguageResult is the per-tag breakdown entry.
type LanguageResult struct {
	Total        int     `json:"total"`
	Correct      int     `json:"correct"`
	Accuracy     float64 `json:"accuracy"`
	DetectorCode string  `json:"detector_code"`
}

// Result is the immutable aggregate of one evaluation run.
type Result struct {
	Detector           string                    `json:"detector"`
	OverallAccuracy    float64                   `json:"overall_accuracy"`
	AccuracyCI95       metrics.Interval          `json:"accuracy_ci_95"`
	Total              int                       `json:"total"`
	Correct            int                       `json:"correct"`
	UnknownCount       int                       `json:"unknown_count"`
	SkippedUnmapped    int                       `json:"skipped_unmapped"`
	LanguagesEvaluated int                       `json:"languages_evaluated"`
	ElapsedSeconds     float64                   `json:"elapsed_seconds"`
	PerLanguage        map[string]LanguageResult `json:"per_language"`
	SampleErrors       []ErrorSample             `json:"sample_errors"`
}

// BuildResult folds the aggregator into the final record.
func BuildResult(detector string, agg *Aggregator, codeMap langcodes.CodeMap, skipped int, elapsed time.Duration) *Result {
	perLanguage := make(map[string]LanguageResult, len(agg.PerTag))
	for tag, tally := range agg.PerTag {
		accuracy := 0.0
		if tally.Total > 0 {
			accuracy = float64(tally.Correct) / float64(tally.Total)
		}
		perLanguage[tag] = LanguageResult{
			Total:        tally.Total,
			Correct:      tally.Correct,
			Accuracy:     accuracy,
			DetectorCode: codeMap[tag],
		}
	}

	samples := agg.Errors
	if len(samples) > ReportedErrorSamples {
		samples = samples[:ReportedErrorSamples]
	}

	return &Result{
		Detector:           detector,
		OverallAccuracy:    agg.Accuracy(),
		AccuracyCI95:       metrics.ProportionCI95(agg.Correct, agg.Total),
		Total:              agg.Total,
		Correct:            agg.Correct,
		UnknownCount:       agg.Unknown,
		SkippedUnmapped:    skipped,
		LanguagesEvaluated: len(agg.PerTag),
		ElapsedSeconds:     elapsed.Seconds(),
		PerLanguage:        perLanguage,
		SampleErrors:       samples,
	}
}

// SortedTags returns the per-language keys ordered by descending row count,
// ties broken alphabetically, for stable table output.
func (r *Result) SortedTags() []string {
	tags := make([]string, 0, len(r.PerLanguage))
	for tag := range r.PerLanguage {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		ti, tj := r.PerLanguage[tags[i]].Total, r.PerLanguage[tags[j]].Total
		if ti != tj {
			return ti > tj
		}
		return tags[i] < tags[j]
	})
	return tags
}

// AccuracySpread returns the mean and standard deviation of the per-language
// accuracies, both 0 when no languages were evaluated. The spread shows
// whether the overall figure hides a few badly-served languages.
func (r *Result) AccuracySpread() (mean, stddev float64) {
	accs := make([]float64, 0, len(r.PerLanguage))
	for _, lr := range r.PerLanguage {
		accs = append(accs, lr.Accuracy)
	}
	return metrics.Mean(accs), metrics.StdDev(accs)
}

// UnknownRate returns the fraction of predictions that were the unknown
// sentinel, 0 when nothing was evaluated.
func (r *Result) UnknownRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.UnknownCount) / float64(r.Total)
}

// RowsPerSec returns run throughput, 0 for an instantaneous run.
func (r *Result) RowsPerSec() float64 {
	if r.ElapsedSeconds <= 0 {
		return 0
	}
	return float64(r.Total) / r.ElapsedSeconds
}

// Save writes the result as indented JSON. A write failure is returned to
// the caller; by the time Save runs the result has already been printed, so
// only the durable copy is lost.
func (r *Result) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("results: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("results: writing %s: %w", path, err)
	}
	return nil
}
