package phasetimer

import (
	"bytes"
	"fmt"
	"io"
)

// # TimerBuilder
//
// TimerBuilder implements a builder pattern to generate new timers.
// Its zero value has no particular meaning and should not be used.
// A TimerBuilder should always be instantiated using [NewTimerBuilder].
type TimerBuilder struct {
	cats  *Categories
	clock CPUClock
	sinks []io.Writer
	fatal FatalReporter
	level Level
	sync  SyncMode
}

// NewTimerBuilder returns a [TimerBuilder] which will generate timers that:
//   - use [DefaultCategories]
//   - read the process CPU clock ([ProcessCPU])
//   - start at [LevelNormal] without sync
//   - write no confirmation lines
//   - exit the process on a fatal configuration error
func NewTimerBuilder() *TimerBuilder {
	return &TimerBuilder{
		cats:  DefaultCategories(),
		clock: ProcessCPU,
		fatal: ExitOnFatal,
		level: LevelNormal,
		sync:  SyncOff,
	}
}

func (tb TimerBuilder) String() string {
	b := bytes.NewBufferString("")

	b.WriteString("[TimerBuilder]\n")
	b.WriteString(fmt.Sprintf("categories: %d\n", tb.cats.Count()))
	b.WriteString(fmt.Sprintf("style: %s\n", tb.level))
	b.WriteString(fmt.Sprintf("mode: %s\n", tb.sync))
	b.WriteString(fmt.Sprintf("sinks: %d\n", len(tb.sinks)))

	return b.String()
}

// NewTimer generates a zeroed timer for the process identified by group.
func (tb *TimerBuilder) NewTimer(group ProcessGroup) *Timer {
	n := tb.cats.Count()
	return &Timer{
		group: group,
		clock: tb.clock,
		cats:  tb.cats,
		sinks: append([]io.Writer(nil), tb.sinks...),
		fatal: tb.fatal,
		level: tb.level,
		sync:  tb.sync,
		cpu:   make([]float64, n),
		wall:  make([]float64, n),
	}
}

// Copy generates and returns a copy of tb. The category set is shared.
func (tb TimerBuilder) Copy() *TimerBuilder {
	ctb := tb
	ctb.sinks = append([]io.Writer(nil), tb.sinks...)
	return &ctb
}

// WithCategories modifies and returns tb, making new timers use cs.
func (tb *TimerBuilder) WithCategories(cs *Categories) *TimerBuilder {
	tb.cats = cs
	return tb
}

// WithCPUClock modifies and returns tb, making new timers read CPU time from c.
func (tb *TimerBuilder) WithCPUClock(c CPUClock) *TimerBuilder {
	tb.clock = c
	return tb
}

// WithSinks modifies and returns tb, adding writers that receive the
// confirmation line of [Timer.ModifyParams] on the root process.
func (tb *TimerBuilder) WithSinks(ws ...io.Writer) *TimerBuilder {
	for _, w := range ws {
		if w != nil {
			tb.sinks = append(tb.sinks, w)
		}
	}
	return tb
}

// WithFatal modifies and returns tb, making new timers report configuration
// errors to f.
func (tb *TimerBuilder) WithFatal(f FatalReporter) *TimerBuilder {
	tb.fatal = f
	return tb
}

// WithLevel modifies and returns tb, setting the initial style of new timers.
func (tb *TimerBuilder) WithLevel(l Level) *TimerBuilder {
	tb.level = l
	return tb
}

// WithSyncMode modifies and returns tb, setting the initial mode of new timers.
func (tb *TimerBuilder) WithSyncMode(m SyncMode) *TimerBuilder {
	tb.sync = m
	return tb
}
