package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lidbench",
		Short: "lidbench - benchmark language-identification detectors",
		Long: `lidbench benchmarks language-identification detectors against a labeled
text corpus whose tag taxonomy (ISO 639-3 style) differs from the
detectors' own code space.

It reconciles the two code vocabularies, streams the corpus, optionally
draws a balanced per-language sample, and reports overall and per-language
accuracy.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCodesCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
