// Package phasetimer accumulates per-category CPU and wall-clock time across
// the repeated phases of an iterative parallel loop.
//
// Every cooperating process owns one [Timer]. The driver brackets a measured
// loop with [Timer.BarrierStart] and [Timer.BarrierStop] and calls
// [Timer.Stamp] at each phase boundary; a stamp charges the time elapsed since
// the previous stamp to the given category:
//
//	t.Init()
//	t.BarrierStart()
//	for step := 0; step < nsteps; step++ {
//		computeForces()
//		t.Stamp(pair)
//		exchange()
//		t.Stamp(comm)
//	}
//	t.BarrierStop()
//
// Categories are organized as a closed set built by [NewCategories]:
//
//	 TOTAL     whole loop span, managed by BarrierStart/BarrierStop
//	  ├ phase 1
//	  ├ ...
//	  ├ phase n
//	  └ SYNC   time spent waiting in barriers when sync mode is on
//
// A Timer is not safe for concurrent use. Processes coordinate only through
// the [ProcessGroup] barrier; every process must issue the same sequence of
// barrier-bearing calls or the job deadlocks.
package phasetimer

import (
	"os"

	"golang.org/x/exp/slog"
)

func init() {
	logLevel = new(slog.LevelVar)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(h)
}

var (
	logger   *slog.Logger
	logLevel *slog.LevelVar
)

// SetLogger sets the logger used by phasetimer.
// [SetLogLevel] will not be enforced if a custom logger is used.
func SetLogger(newlogger *slog.Logger) {
	logger = newlogger
}

// SetLogLevel sets the level for phasetimer messages unless [SetLogger] has been called.
// The default log level is the zero value of [slog.LevelVar].
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
