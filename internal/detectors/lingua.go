package detectors

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pemistahl/lingua-go"
)

type linguaOptions struct {
	// Languages restricts the detector to the given ISO 639-1 codes.
	// Empty means all languages lingua ships models for.
	Languages []string `mapstructure:"languages"`
	// LowAccuracy trades accuracy for speed and memory.
	LowAccuracy bool `mapstructure:"low_accuracy"`
	// Preload loads all language models eagerly instead of on first use.
	Preload bool `mapstructure:"preload"`
}

// linguaDetector adapts pemistahl/lingua-go.
type linguaDetector struct {
	detector  lingua.LanguageDetector
	supported []string
}

func newLingua(options map[string]any) (*linguaDetector, error) {
	var opts linguaOptions
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("detectors: lingua options: %w", err)
	}

	languages := lingua.AllLanguages()
	if len(opts.Languages) > 0 {
		languages = filterLinguaLanguages(languages, opts.Languages)
		if len(languages) < 2 {
			return nil, fmt.Errorf("detectors: lingua needs at least 2 languages, got %d from %v", len(languages), opts.Languages)
		}
	}

	builder := lingua.NewLanguageDetectorBuilder().FromLanguages(languages...)
	if opts.LowAccuracy {
		builder = builder.WithLowAccuracyMode()
	}
	if opts.Preload {
		builder = builder.WithPreloadedLanguageModels()
	}

	supported := make([]string, 0, len(languages))
	for _, lang := range languages {
		supported = append(supported, strings.ToLower(lang.IsoCode639_1().String()))
	}

	return &linguaDetector{
		detector:  builder.Build(),
		supported: supported,
	}, nil
}

func filterLinguaLanguages(all []lingua.Language, codes []string) []lingua.Language {
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[strings.ToLower(c)] = true
	}
	var kept []lingua.Language
	for _, lang := range all {
		if want[strings.ToLower(lang.IsoCode639_1().String())] {
			kept = append(kept, lang)
		}
	}
	return kept
}

func (d *linguaDetector) Name() string { return "lingua" }

func (d *linguaDetector) SupportedCodes() []string { return d.supported }

func (d *linguaDetector) Detect(text string) (string, float64, error) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return CodeUnknown, 0, nil
	}
	confidence := d.detector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence, nil
}
