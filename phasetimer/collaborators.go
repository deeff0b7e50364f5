package phasetimer

import (
	"os"

	"golang.org/x/exp/slog"

	"github.com/onegii/go-phasetimer/internal/cputime"
)

// ProcessGroup is the collective layer a Timer relies on.
type ProcessGroup interface {
	// Barrier blocks until every process of the group has arrived.
	Barrier()
	// Now returns the shared monotonic wall clock in seconds.
	Now() float64
	// Rank identifies the calling process; rank 0 is the root.
	Rank() int
}

// CPUClock returns the user-mode CPU seconds consumed by the calling process.
type CPUClock interface {
	CPUSeconds() float64
}

// CPUClockFunc adapts a plain function to [CPUClock].
type CPUClockFunc func() float64

func (f CPUClockFunc) CPUSeconds() float64 { return f() }

// ProcessCPU is the operating system CPU clock of the current process.
var ProcessCPU CPUClock = CPUClockFunc(cputime.UserSeconds)

// FatalReporter terminates the job on an unrecoverable configuration error.
// where is a source location hint for the failing call.
type FatalReporter interface {
	Fatal(err error, where string)
}

// FatalFunc adapts a plain function to [FatalReporter].
type FatalFunc func(err error, where string)

func (f FatalFunc) Fatal(err error, where string) { f(err, where) }

// ExitOnFatal logs the error and exits the process with status 1.
var ExitOnFatal FatalReporter = FatalFunc(func(err error, where string) {
	logger.Error("fatal timer error",
		slog.String("error", err.Error()),
		slog.String("where", where))
	os.Exit(1)
})
