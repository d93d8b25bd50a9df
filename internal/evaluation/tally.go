package evaluation

import (
	"github.com/spirit-guess/lidbench/internal/detectors"
	"github.com/spirit-guess/lidbench/internal/langcodes"
)

const (
	// ErrorSampleCapacity caps misclassification samples captured during
	// the run. Once full, later misclassifications are counted but not
	// sampled; nothing is ever evicted.
	ErrorSampleCapacity = 100
	// TextPrefixRunes is how much of a misclassified text is kept.
	TextPrefixRunes = 200
)

// TagTally holds per-tag counters.
type TagTally struct {
	Total   int
	Correct int
}

// ErrorSample is one captured misclassification.
type ErrorSample struct {
	Text       string  `json:"text"`
	Gold       string  `json:"gold"`
	GoldCoarse string  `json:"gold_coarse"`
	Predicted  string  `json:"pred"`
	Score      float64 `json:"score"`
}

// Aggregator is the single-owner mutable state of an evaluation run. It is
// confined to the runner's goroutine; nothing else writes to it while the
// run is in flight.
type Aggregator struct {
	Total   int
	Correct int
	Unknown int
	PerTag  map[string]*TagTally
	Errors  []ErrorSample
}

func NewAggregator() *Aggregator {
	return &Aggregator{PerTag: make(map[string]*TagTally)}
}

// Observe scores one prediction against its row. Correctness is equality
// after regional-variant normalization on both sides, so gold "pt_PT"
// matches predicted "pt_BR". Returns whether the prediction was correct.
func (a *Aggregator) Observe(row Row, pred detectors.Prediction) bool {
	if pred.Code == detectors.CodeUnknown {
		a.Unknown++
	}

	correct := langcodes.Normalize(pred.Code) == langcodes.Normalize(row.Gold)

	a.Total++
	tally := a.PerTag[row.Tag]
	if tally == nil {
		tally = &TagTally{}
		a.PerTag[row.Tag] = tally
	}
	tally.Total++

	if correct {
		a.Correct++
		tally.Correct++
	} else if len(a.Errors) < ErrorSampleCapacity {
		a.Errors = append(a.Errors, ErrorSample{
			Text:       prefixRunes(row.Text, TextPrefixRunes),
			Gold:       row.Tag,
			GoldCoarse: row.Gold,
			Predicted:  pred.Code,
			Score:      pred.Score,
		})
	}
	return correct
}

// Accuracy returns correct/total, or 0 when nothing was evaluated.
func (a *Aggregator) Accuracy() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

func prefixRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
