package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spirit-guess/lidbench/internal/evaluation"
)

func printSummary(res *evaluation.Result) {
	fmt.Println()
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Printf(" RESULTS — %s\n", res.Detector)
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println()

	fmt.Printf("Overall accuracy:    %d/%d = %.2f%%\n", res.Correct, res.Total, res.OverallAccuracy*100)
	fmt.Printf("95%% CI:              [%.3f, %.3f]\n", res.AccuracyCI95.Lower, res.AccuracyCI95.Upper)
	fmt.Printf("Unknown predictions: %d/%d = %.1f%%\n", res.UnknownCount, res.Total, res.UnknownRate()*100)
	fmt.Printf("Skipped (unmapped):  %d\n", res.SkippedUnmapped)
	fmt.Printf("Languages evaluated: %d\n", res.LanguagesEvaluated)
	mean, stddev := res.AccuracySpread()
	fmt.Printf("Per-language acc:    mean %.1f%% (σ=%.4f)\n", mean*100, stddev)
	fmt.Printf("Time: %.1fs (%.0f rows/sec)\n", res.ElapsedSeconds, res.RowsPerSec())
	fmt.Println()

	printPerLanguageTable(res)

	if len(res.SampleErrors) > 0 {
		fmt.Printf("Sample misclassifications (%d):\n", len(res.SampleErrors))
		for _, e := range res.SampleErrors {
			fmt.Printf("  gold=%s(%s) pred=%s score=%.2f  %s\n",
				e.Gold, e.GoldCoarse, e.Predicted, e.Score, truncate(e.Text, 60))
		}
		fmt.Println()
	}
}

func printPerLanguageTable(res *evaluation.Result) {
	fmt.Printf("%s %s %s %s %s\n",
		padRight("Tag", 6), padRight("Code", 5),
		padLeft("Total", 7), padLeft("Correct", 8), padLeft("Acc", 7))
	fmt.Println(strings.Repeat("-", 40))
	for _, tag := range res.SortedTags() {
		lr := res.PerLanguage[tag]
		fmt.Printf("%s %s %s %s %s\n",
			padRight(tag, 6), padRight(lr.DetectorCode, 5),
			padLeft(fmt.Sprint(lr.Total), 7), padLeft(fmt.Sprint(lr.Correct), 8),
			padLeft(fmt.Sprintf("%.1f%%", lr.Accuracy*100), 7))
	}
	fmt.Println()
}

// printComparison renders a comparison table for multi-detector runs.
func printComparison(results []detectorResult) {
	fmt.Println()
	fmt.Println("═" + strings.Repeat("═", 54))
	fmt.Println(" DETECTOR COMPARISON")
	fmt.Println("═" + strings.Repeat("═", 54))
	fmt.Println()
	fmt.Printf("%-12s %-10s %-10s %-10s %s\n", "Detector", "Accuracy", "Unknown", "Skipped", "Rows/sec")
	fmt.Println("─" + strings.Repeat("─", 54))

	for _, dr := range results {
		res := dr.result
		fmt.Printf("%-12s %-10s %-10s %-10d %.0f\n",
			dr.name,
			fmt.Sprintf("%.2f%%", res.OverallAccuracy*100),
			fmt.Sprintf("%.1f%%", res.UnknownRate()*100),
			res.SkippedUnmapped,
			res.RowsPerSec())
	}
	fmt.Println()
}

// truncate shortens s to maxLen runes, appending "…" if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// padLeft left-pads s with spaces so its display width reaches width.
func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}
