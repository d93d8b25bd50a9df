// Package reporting turns evaluation results into human-readable reports.
package reporting

import (
	"fmt"
	"strings"

	"github.com/spirit-guess/lidbench/internal/evaluation"
)

// InterpretAccuracy returns a plain-language label for an accuracy (0–1).
func InterpretAccuracy(accuracy float64) string {
	pct := accuracy * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretUnknownRate explains the undetermined-prediction rate (0–1).
func InterpretUnknownRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct < 1:
		return fmt.Sprintf("The detector almost always commits to an answer (%.1f%% unknown)", pct)
	case pct < 10:
		return fmt.Sprintf("A small share of texts go undetermined (%.1f%% unknown)", pct)
	default:
		return fmt.Sprintf("The detector frequently refuses to answer (%.1f%% unknown) — accuracy figures understate its precision on committed answers", pct)
	}
}

// FormatSummaryReport produces a plain-language interpretation of a result.
func FormatSummaryReport(res *evaluation.Result) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	b.WriteString(fmt.Sprintf("Overall Accuracy: %.2f — %s\n", res.OverallAccuracy, InterpretAccuracy(res.OverallAccuracy)))
	b.WriteString(fmt.Sprintf("95%% CI:           [%.3f, %.3f]\n", res.AccuracyCI95.Lower, res.AccuracyCI95.Upper))
	b.WriteString(fmt.Sprintf("Unknown Rate:     %s\n", InterpretUnknownRate(res.UnknownRate())))
	if res.SkippedUnmapped > 0 {
		b.WriteString(fmt.Sprintf("Coverage:         %d rows were skipped because their tags could not be mapped to the detector's code space\n", res.SkippedUnmapped))
	}

	// Call out the weakest well-sampled languages.
	var weak []string
	for _, tag := range res.SortedTags() {
		lr := res.PerLanguage[tag]
		if lr.Total >= 20 && lr.Accuracy < 0.5 {
			weak = append(weak, fmt.Sprintf("%s (%.0f%% of %d)", tag, lr.Accuracy*100, lr.Total))
		}
	}
	if len(weak) > 0 {
		b.WriteString(fmt.Sprintf("Weak Languages:   %s\n", strings.Join(weak, ", ")))
	}

	return b.String()
}

// FormatMarkdownReport formats a result as a markdown comment suitable for
// CI summaries or pull requests.
func FormatMarkdownReport(res *evaluation.Result) string {
	var b strings.Builder

	b.WriteString("## Language Identification Benchmark\n\n")
	b.WriteString(fmt.Sprintf("**Detector:** %s | **Accuracy:** %d/%d = %.2f%% | **Elapsed:** %.1fs\n\n",
		res.Detector, res.Correct, res.Total, res.OverallAccuracy*100, res.ElapsedSeconds))

	b.WriteString(fmt.Sprintf("- **95%% CI:** [%.3f, %.3f]\n", res.AccuracyCI95.Lower, res.AccuracyCI95.Upper))
	b.WriteString(fmt.Sprintf("- **Unknown predictions:** %d (%.1f%%)\n", res.UnknownCount, res.UnknownRate()*100))
	b.WriteString(fmt.Sprintf("- **Skipped (unmapped tags):** %d\n", res.SkippedUnmapped))
	b.WriteString(fmt.Sprintf("- **Languages evaluated:** %d\n", res.LanguagesEvaluated))
	mean, stddev := res.AccuracySpread()
	b.WriteString(fmt.Sprintf("- **Per-language accuracy:** mean %.1f%% (σ=%.4f)\n", mean*100, stddev))
	b.WriteString(fmt.Sprintf("- **Throughput:** %.0f rows/sec\n\n", res.RowsPerSec()))

	b.WriteString("### Per-Language Accuracy\n\n")
	b.WriteString("| Tag | Code | Total | Correct | Accuracy |\n")
	b.WriteString("|-----|------|-------|---------|----------|\n")
	for _, tag := range res.SortedTags() {
		lr := res.PerLanguage[tag]
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.1f%% |\n",
			tag, lr.DetectorCode, lr.Total, lr.Correct, lr.Accuracy*100))
	}
	b.WriteString("\n")

	if len(res.SampleErrors) > 0 {
		b.WriteString("<details><summary>Sample misclassifications</summary>\n\n")
		for _, e := range res.SampleErrors {
			text := e.Text
			if len([]rune(text)) > 80 {
				text = string([]rune(text)[:80]) + "…"
			}
			b.WriteString(fmt.Sprintf("- gold `%s` (%s), predicted `%s` (%.2f): %s\n",
				e.Gold, e.GoldCoarse, e.Predicted, e.Score, text))
		}
		b.WriteString("\n</details>\n")
	}

	return b.String()
}
