// Package detectors defines the language-detector interface and the
// adapters for the detectors under test.
package detectors

import (
	"fmt"
	"strings"
)

// Sentinel prediction codes. CodeUnknown is a detector's own "could not
// determine" output; CodeFailure is substituted by DetectSafe when the
// detector invocation itself fails. They are deliberately distinct so
// failure rates and undetermined rates stay separable in the results.
const (
	CodeUnknown = "un"
	CodeFailure = "error"
)

// Detector is a black-box language classifier.
type Detector interface {
	// Name returns the detector identifier used in results.
	Name() string
	// SupportedCodes lists the language codes the detector can emit,
	// lowercase, possibly including regional variants like "pt_BR".
	SupportedCodes() []string
	// Detect classifies text, returning a language code and a confidence
	// score. Implementations may fail; callers should go through DetectSafe.
	Detect(text string) (code string, score float64, err error)
}

// Prediction is the tagged outcome of a safe detector invocation.
type Prediction struct {
	Code   string
	Score  float64
	Failed bool
}

// DetectSafe wraps Detect so that a benchmark run never aborts on a single
// detector failure: any error maps deterministically to CodeFailure with a
// zero score, which downstream scoring treats as an ordinary wrong answer.
func DetectSafe(d Detector, text string) Prediction {
	code, score, err := d.Detect(text)
	if err != nil {
		return Prediction{Code: CodeFailure, Score: 0, Failed: true}
	}
	return Prediction{Code: code, Score: score}
}

// Names lists the selectable detector identifiers.
var Names = []string{"lingua", "whatlang", "stub"}

// New builds a detector by identifier. Options are detector-specific and
// come from the project config; unknown identifiers are an error.
func New(name string, options map[string]any) (Detector, error) {
	switch name {
	case "lingua":
		return newLingua(options)
	case "whatlang":
		return newWhatlang(options)
	case "stub":
		return newStub(options)
	default:
		return nil, fmt.Errorf("detectors: unknown detector %q (supported: %s)", name, strings.Join(Names, ", "))
	}
}
