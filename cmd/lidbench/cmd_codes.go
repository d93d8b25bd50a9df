package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spirit-guess/lidbench/internal/detectors"
	"github.com/spirit-guess/lidbench/internal/langcodes"
	"github.com/spirit-guess/lidbench/internal/projectconfig"
)

var codesDetector string

func newCodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes [tag...]",
		Short: "Show how corpus tags reconcile with a detector's code space",
		Long: `Print the detector's supported codes and the manual override table,
marking overrides whose targets the detector does not carry.

With tag arguments, each tag is resolved through the full reconciliation
(override first, then the ISO registry) and the outcome is printed.`,
		RunE: codesCommandE,
	}

	cmd.Flags().StringVarP(&codesDetector, "detector", "d", "",
		fmt.Sprintf("Detector whose code space to inspect (one of: %s)", strings.Join(detectors.Names, ", ")))

	return cmd
}

func codesCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	name := codesDetector
	if name == "" {
		name = cfg.Defaults.Detector
	}

	detector, err := detectors.New(name, cfg.Detectors[name])
	if err != nil {
		return err
	}
	supported := langcodes.CodeSet(detector.SupportedCodes())
	overrides := langcodes.MergeOverrides(langcodes.DefaultOverrides(), cfg.Overrides)

	codes := append([]string(nil), detector.SupportedCodes()...)
	sort.Strings(codes)
	fmt.Printf("Detector %s supports %d codes:\n", name, len(codes))
	printWrapped(codes, 72)

	fmt.Printf("\nManual overrides (%d):\n", len(overrides))
	overrideTags := make([]string, 0, len(overrides))
	for tag := range overrides {
		overrideTags = append(overrideTags, tag)
	}
	sort.Strings(overrideTags)
	for _, tag := range overrideTags {
		target := overrides[tag]
		note := ""
		if !supported[target] {
			note = "  (target unsupported — tag will be dropped)"
		}
		fmt.Printf("  %-5s → %-5s%s\n", tag, target, note)
	}

	if len(args) > 0 {
		codeMap := langcodes.BuildCodeMap(args, supported, langcodes.ISOResolver{}, overrides)
		fmt.Println()
		for _, tag := range args {
			if code, ok := codeMap[tag]; ok {
				fmt.Printf("  %-5s → %s\n", tag, code)
			} else {
				fmt.Printf("  %-5s → (unmapped)\n", tag)
			}
		}
	}

	return nil
}

// printWrapped prints codes comma-separated, wrapped to the given width.
func printWrapped(codes []string, width int) {
	line := "  "
	for i, code := range codes {
		entry := code
		if i < len(codes)-1 {
			entry += ", "
		}
		if len(line)+len(entry) > width {
			fmt.Println(line)
			line = "  "
		}
		line += entry
	}
	if strings.TrimSpace(line) != "" {
		fmt.Println(line)
	}
}
