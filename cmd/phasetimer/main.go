// Package main provides the CLI entry point for phasetimer.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/onegii/go-phasetimer/phasetimer"
)

var (
	debugMode   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "phasetimer",
	Short: "Phase timing for iterative parallel loops",
	Long: `phasetimer runs a synthetic iterative loop on a group of local ranks and
reports how the loop time splits across its phases.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColorFlag {
			color.NoColor = true
		}
		if debugMode {
			phasetimer.SetLogLevel(slog.LevelDebug)
		}
	},
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
