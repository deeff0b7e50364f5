package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/onegii/go-phasetimer/internal/config"
	"github.com/onegii/go-phasetimer/phasetimer"
)

var timersCmd = &cobra.Command{
	Use:   "timers <keyword>...",
	Short: "Check timer keywords and print the resulting settings",
	Long: `Apply timer keywords to the default settings (style=normal mode=nosync)
and print the confirmation line. An unknown keyword is a fatal error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := phasetimer.NewTimerBuilder().
			WithSinks(cmd.OutOrStdout()).
			NewTimer(soloGroup{})
		return t.ModifyParams(args...)
	},
}

func init() {
	rootCmd.AddCommand(timersCmd)
}

// soloGroup is the one-rank group used outside of a loop.
type soloGroup struct{}

func (soloGroup) Barrier() {}
func (soloGroup) Now() float64 { return 0 }
func (soloGroup) Rank() int { return 0 }

// applyKeyword folds one style or mode keyword into tc.
func applyKeyword(tc *config.TimerConfig, word string) error {
	if _, err := phasetimer.ParseLevel(word); err == nil {
		tc.Style = word
		return nil
	}
	if _, err := phasetimer.ParseSyncMode(word); err == nil {
		tc.Mode = word
		return nil
	}
	return errors.Wrapf(phasetimer.ErrIllegalTimers, "%q", word)
}
