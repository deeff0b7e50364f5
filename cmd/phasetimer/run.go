package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/onegii/go-phasetimer/internal/config"
	"github.com/onegii/go-phasetimer/internal/sim"
)

var (
	configPath string
	perRank    bool
)

var runCmd = &cobra.Command{
	Use:   "run [timer keywords...]",
	Short: "Run the synthetic loop and print the timing breakdown",
	Long: `Run the synthetic loop on the configured number of ranks.

Trailing arguments are timer keywords (off|loop|normal|full, nosync|sync)
applied after the configured style and mode, e.g.

  phasetimer run --ranks 8 full sync`,
	RunE: runLoop,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a TOML configuration file")
	runCmd.Flags().Int("ranks", 0, "Number of ranks")
	runCmd.Flags().Int("steps", 0, "Steps per loop")
	runCmd.Flags().Int("loops", 0, "Number of loop invocations")
	runCmd.Flags().Duration("work", 0, "Work per phase per step on rank 0")
	runCmd.Flags().Float64("imbalance", 0, "Extra work of the last rank relative to rank 0")
	runCmd.Flags().StringSlice("phases", nil, "Comma-separated phase names")
	runCmd.Flags().Bool("resume", false, "Keep accumulating across loops")
	runCmd.Flags().BoolVar(&perRank, "per-rank", false, "Print the breakdown of every rank")
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"ranks":     "run.ranks",
	"steps":     "run.steps",
	"loops":     "run.loops",
	"work":      "run.work",
	"imbalance": "run.imbalance",
	"phases":    "phases",
	"resume":    "run.resume",
}

func changedFlags(cmd *cobra.Command) (map[string]any, error) {
	flags := make(map[string]any)
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		var (
			v   any
			err error
		)
		switch name {
		case "work":
			v, err = cmd.Flags().GetDuration(name)
		case "imbalance":
			v, err = cmd.Flags().GetFloat64(name)
		case "phases":
			v, err = cmd.Flags().GetStringSlice(name)
		case "resume":
			v, err = cmd.Flags().GetBool(name)
		default:
			v, err = cmd.Flags().GetInt(name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "flag --%s", name)
		}
		flags[key] = v
	}
	return flags, nil
}

func runLoop(cmd *cobra.Command, args []string) error {
	flags, err := changedFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader(configPath).Load(flags)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	for _, a := range args {
		if err := applyKeyword(&cfg.Timer, a); err != nil {
			return err
		}
	}

	res, err := sim.NewRunner(cfg, os.Stdout, newLogger()).Run(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "loop failed")
	}

	if perRank {
		for _, s := range res.Snapshots {
			s.Print(os.Stdout)
		}
	}
	res.Summary.Print(os.Stdout)
	return nil
}
