package phasetimer

import (
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// ErrIllegalTimers is reported for a token that is neither a style nor a mode.
var ErrIllegalTimers = errors.New("illegal timers command")

const settingsFormat = "New timer settings: style=%s  mode=%s\n"

// ModifyParams applies style (off|loop|normal|full) and mode (nosync|sync)
// keywords in order; later keywords win. All tokens are checked before any
// change is made. An unknown token goes to the fatal reporter and, should
// the reporter return, is returned as an error with the settings untouched.
//
// On the root process the resulting settings are written to every sink.
func (t *Timer) ModifyParams(args ...string) error {
	level, mode := t.level, t.sync

	for i, arg := range args {
		if l, err := ParseLevel(arg); err == nil {
			level = l
			continue
		}
		if m, err := ParseSyncMode(arg); err == nil {
			mode = m
			continue
		}

		err := errors.Wrapf(ErrIllegalTimers, "argument %d %q", i+1, arg)
		t.fatal.Fatal(err, caller())
		return err
	}

	t.level, t.sync = level, mode
	logger.Debug("timer settings changed",
		slog.Int("rank", t.group.Rank()),
		slog.String("style", level.String()),
		slog.String("mode", mode.String()))

	if t.group.Rank() != 0 {
		return nil
	}
	for _, w := range t.sinks {
		if _, err := fmt.Fprintf(w, settingsFormat, level, mode); err != nil {
			logger.Warn("cannot write timer settings",
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// caller returns file:line of the code that invoked ModifyParams.
func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
