package phasetimer

import (
	"io"

	"golang.org/x/exp/slog"
)

// # Timer
//
// Accumulates CPU and wall seconds per category for one process.
// Its zero value has no meaning. A Timer should always be instantiated
// with [TimerBuilder.NewTimer].
//
// Misuse is not checked: stamping at [LevelOff], calling BarrierStop without
// a matching BarrierStart, or calling from several goroutines at once all
// produce meaningless values. Passing a category outside the set to
// CPUSince, Elapsed, SetWall, Wall or CPU panics with an index error.
type Timer struct {
	group ProcessGroup
	clock CPUClock
	cats  *Categories
	sinks []io.Writer
	fatal FatalReporter

	level Level
	sync  SyncMode

	cpu      []float64
	wall     []float64
	prevCPU  float64
	prevWall float64
}

// Init zeroes every accumulator. Call it before the first stamp of each
// loop; skipping it carries the previous loop's totals forward.
func (t *Timer) Init() {
	for i := range t.cpu {
		t.cpu[i] = 0
		t.wall[i] = 0
	}
}

// sample reads the wall clock, and the CPU clock when the level asks for it.
func (t *Timer) sample() (cpu, wall float64) {
	if t.level.samplesCPU() {
		cpu = t.clock.CPUSeconds()
	}
	wall = t.group.Now()
	return cpu, wall
}

// Stamp charges the time since the previous stamp to c and rebases the
// reference point. TOTAL or an out-of-range c only rebases. With sync mode
// on, a barrier follows and its wait is charged to SYNC.
func (t *Timer) Stamp(c Category) {
	cpu, wall := t.sample()

	if t.cats.Stampable(c) {
		t.cpu[c] += cpu - t.prevCPU
		t.wall[c] += wall - t.prevWall
	}
	t.prevCPU = cpu
	t.prevWall = wall

	if t.sync == SyncOff {
		return
	}

	t.group.Barrier()
	cpu, wall = t.sample()

	s := t.cats.Sync()
	t.cpu[s] += cpu - t.prevCPU
	t.wall[s] += wall - t.prevWall
	t.prevCPU = cpu
	t.prevWall = wall
}

// BarrierStart synchronizes all processes and records the absolute start of
// the loop in the TOTAL bucket.
func (t *Timer) BarrierStart() {
	t.group.Barrier()
	cpu, wall := t.sample()

	t.cpu[Total] = cpu
	t.wall[Total] = wall
	t.prevCPU = cpu
	t.prevWall = wall

	logger.Debug("timer loop started",
		slog.Int("rank", t.group.Rank()),
		slog.Float64("wall", wall))
}

// BarrierStop synchronizes all processes and turns the TOTAL start mark into
// the loop duration. The reference point is left untouched.
func (t *Timer) BarrierStop() {
	t.group.Barrier()
	cpu, wall := t.sample()

	t.cpu[Total] = cpu - t.cpu[Total]
	t.wall[Total] = wall - t.wall[Total]

	logger.Debug("timer loop stopped",
		slog.Int("rank", t.group.Rank()),
		slog.Float64("loop", t.wall[Total]))
}

// CPUSince returns the current process CPU seconds minus the stored value of
// c. The CPU clock is read regardless of the level.
//
// The stored value is an accumulated duration for phases but an absolute
// mark for TOTAL between BarrierStart and BarrierStop, so the result is a
// baseline delta whose meaning depends on how c was last written.
func (t *Timer) CPUSince(c Category) float64 {
	return t.clock.CPUSeconds() - t.cpu[c]
}

// Elapsed returns the current wall clock minus the stored value of c, with the
// same baseline-delta meaning as [Timer.CPUSince].
func (t *Timer) Elapsed(c Category) float64 {
	return t.group.Now() - t.wall[c]
}

// SetWall overwrites the wall accumulator of c, bypassing the stamp protocol.
// Used to restore accounting across a restart.
func (t *Timer) SetWall(c Category, seconds float64) {
	t.wall[c] = seconds
}

// Wall returns the wall seconds accumulated for c.
func (t *Timer) Wall(c Category) float64 {
	return t.wall[c]
}

// CPU returns the CPU seconds accumulated for c.
func (t *Timer) CPU(c Category) float64 {
	return t.cpu[c]
}

// Level returns the current timer style.
func (t *Timer) Level() Level { return t.level }

// SyncMode returns whether stamps are followed by a barrier.
func (t *Timer) SyncMode() SyncMode { return t.sync }

// Categories returns the category set the timer was built with.
func (t *Timer) Categories() *Categories { return t.cats }

// Rank returns the rank of the owning process.
func (t *Timer) Rank() int { return t.group.Rank() }
