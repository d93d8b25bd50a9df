package detectors

import (
	"fmt"

	"github.com/abadojack/whatlanggo"
	"github.com/go-viper/mapstructure/v2"
)

type whatlangOptions struct {
	// ReliableOnly maps low-confidence detections to the unknown sentinel
	// instead of reporting whatlang's best guess.
	ReliableOnly bool `mapstructure:"reliable_only"`
}

// whatlangSupported lists the ISO 639-1 codes for the languages whatlang's
// trigram profiles cover. Languages without a two-letter code are exposed
// through their ISO 639-3 code, matching what Detect returns for them.
var whatlangSupported = []string{
	"af", "ak", "am", "ar", "az", "be", "bg", "bn", "ca", "cs", "da", "de",
	"el", "en", "eo", "es", "et", "fa", "fi", "fr", "gu", "he", "hi", "hr",
	"hu", "hy", "id", "it", "ja", "jv", "ka", "km", "kn", "ko", "la", "lt",
	"lv", "mk", "ml", "mr", "my", "nb", "ne", "nl", "or", "pa", "pl", "pt",
	"ro", "ru", "si", "sk", "sl", "sn", "sr", "sv", "ta", "te", "th", "tk",
	"tl", "tr", "uk", "ur", "uz", "vi", "yi", "zh", "zu",
}

// whatlangDetector adapts abadojack/whatlanggo.
type whatlangDetector struct {
	reliableOnly bool
}

func newWhatlang(options map[string]any) (*whatlangDetector, error) {
	var opts whatlangOptions
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("detectors: whatlang options: %w", err)
	}
	return &whatlangDetector{reliableOnly: opts.ReliableOnly}, nil
}

func (d *whatlangDetector) Name() string { return "whatlang" }

func (d *whatlangDetector) SupportedCodes() []string { return whatlangSupported }

func (d *whatlangDetector) Detect(text string) (string, float64, error) {
	info := whatlanggo.Detect(text)
	if d.reliableOnly && !info.IsReliable() {
		return CodeUnknown, info.Confidence, nil
	}
	code := info.Lang.Iso6391()
	if code == "" {
		// No two-letter code for this language; report the 639-3 code.
		code = info.Lang.Iso6393()
	}
	if code == "" {
		return CodeUnknown, info.Confidence, nil
	}
	return code, info.Confidence, nil
}
