package detectors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

type stubOptions struct {
	// Score is the confidence reported for every prediction.
	Score float64 `mapstructure:"score"`
}

// stubSupported mirrors the code space of the original spirit-guess
// detector family, regional variants and three-letter exceptions included.
// It exists so runs and tests exercise the full reconciliation surface
// without loading any real language models.
var stubSupported = []string{
	"af", "ar", "az", "bg", "bn", "bo", "ca", "ceb", "cs", "cy", "da", "de",
	"el", "en", "eo", "es", "et", "eu", "fa", "fi", "fr", "gu", "ha", "haw",
	"he", "hi", "hr", "hu", "hy", "id", "is", "it", "ka", "kk", "km", "ky",
	"la", "lt", "lv", "mk", "ml", "mn", "mr", "nb", "nr", "ne", "nl", "nso",
	"pa", "pl", "ps", "pt", "pt_PT", "pt_BR", "ro", "ru", "sk", "sl", "so",
	"sq", "sr", "ss", "st", "sv", "sw", "te", "th", "tl", "tlh", "tn", "tr",
	"ts", "uk", "ur", "uz", "ve", "vi", "xh", "zu",
}

// stubDetector is a deterministic detector for tests and dry runs, in the
// same role as a mock execution engine. It reads its answer from the text
// itself: a "xx:" prefix predicts code xx, a "fail:" prefix returns an
// error, and anything else is the unknown sentinel.
type stubDetector struct {
	score float64
}

var errStubFailure = errors.New("detectors: stub invocation failure")

func newStub(options map[string]any) (*stubDetector, error) {
	opts := stubOptions{Score: 0.9}
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("detectors: stub options: %w", err)
	}
	return &stubDetector{score: opts.Score}, nil
}

func (d *stubDetector) Name() string { return "stub" }

func (d *stubDetector) SupportedCodes() []string { return stubSupported }

func (d *stubDetector) Detect(text string) (string, float64, error) {
	prefix, _, ok := strings.Cut(text, ":")
	if !ok {
		return CodeUnknown, 0, nil
	}
	if prefix == "fail" {
		return "", 0, errStubFailure
	}
	return prefix, d.score, nil
}
