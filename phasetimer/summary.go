package phasetimer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrNoSnapshots is returned by [Summarize] when given nothing to summarize.
var ErrNoSnapshots = errors.New("no timer snapshots")

// ErrSnapshotMismatch is returned by [Summarize] when snapshots disagree on
// their categories.
var ErrSnapshotMismatch = errors.New("timer snapshots do not match")

// Row holds the accumulators of one category.
type Row struct {
	Category Category
	Name     string
	Wall     float64
	CPU      float64

	// Percent is Wall as a share of the loop wall time.
	Percent float64
}

// Snapshot is a copy of one process's accumulators after a loop.
type Snapshot struct {
	Rank    int
	Level   Level
	Loop    float64
	LoopCPU float64
	Rows    []Row
}

// Snapshot copies the TOTAL bucket and every stampable category. It is meant
// to be called after [Timer.BarrierStop].
func (t *Timer) Snapshot() Snapshot {
	s := Snapshot{
		Rank:    t.group.Rank(),
		Level:   t.level,
		Loop:    t.wall[Total],
		LoopCPU: t.cpu[Total],
		Rows:    make([]Row, 0, t.cats.Count()-1),
	}

	for i := 1; i < t.cats.Count(); i++ {
		c := Category(i)
		s.Rows = append(s.Rows, Row{
			Category: c,
			Name:     t.cats.Name(c),
			Wall:     t.wall[c],
			CPU:      t.cpu[c],
			Percent:  percent(t.wall[c], s.Loop),
		})
	}
	return s
}

// Other is the loop time not attributed to any category.
func (s Snapshot) Other() float64 {
	other := s.Loop
	for _, r := range s.Rows {
		other -= r.Wall
	}
	return other
}

// SummaryRow is the cross-process spread of one category.
type SummaryRow struct {
	Name string
	Min  float64
	Avg  float64
	Max  float64

	// VarAvg is (Max-Min) relative to Avg, in percent.
	VarAvg float64

	// Percent is Avg as a share of the loop time.
	Percent float64
}

// Summary aggregates the snapshots of all processes of one loop.
type Summary struct {
	Procs int
	Loop  float64
	Rows  []SummaryRow

	// CPUUse is the average ratio of loop CPU to loop wall time, in percent.
	// It is only set when HasCPU is true, i.e. every snapshot was taken at
	// [LevelFull].
	CPUUse float64
	HasCPU bool

	// SharedCPU marks ranks that run inside one OS process, so each of them
	// reads the CPU time of all of them.
	SharedCPU bool
}

// Summarize computes min/avg/max per category across snapshots. The loop time
// is the average of the per-process loop times.
func Summarize(snaps []Snapshot) (*Summary, error) {
	if len(snaps) == 0 {
		return nil, ErrNoSnapshots
	}

	n := float64(len(snaps))
	sum := &Summary{
		Procs:  len(snaps),
		HasCPU: true,
		Rows:   make([]SummaryRow, len(snaps[0].Rows)),
	}

	for i, r := range snaps[0].Rows {
		sum.Rows[i] = SummaryRow{Name: r.Name, Min: math.Inf(1), Max: math.Inf(-1)}
	}

	var cpuUse float64
	for _, s := range snaps {
		if len(s.Rows) != len(sum.Rows) {
			return nil, errors.Wrapf(ErrSnapshotMismatch,
				"rank %d has %d categories, want %d", s.Rank, len(s.Rows), len(sum.Rows))
		}
		sum.Loop += s.Loop / n
		if s.Level != LevelFull {
			sum.HasCPU = false
		}
		cpuUse += percent(s.LoopCPU, s.Loop) / n

		for i, r := range s.Rows {
			sr := &sum.Rows[i]
			if r.Name != sr.Name {
				return nil, errors.Wrapf(ErrSnapshotMismatch,
					"rank %d category %d is %q, want %q", s.Rank, i, r.Name, sr.Name)
			}
			sr.Min = math.Min(sr.Min, r.Wall)
			sr.Max = math.Max(sr.Max, r.Wall)
			sr.Avg += r.Wall / n
		}
	}

	for i := range sum.Rows {
		sr := &sum.Rows[i]
		sr.VarAvg = percent(sr.Max-sr.Min, sr.Avg)
		sr.Percent = percent(sr.Avg, sum.Loop)
	}
	if sum.HasCPU {
		sum.CPUUse = cpuUse
	}

	return sum, nil
}

func (s *Summary) String() string {
	var b bytes.Buffer

	b.WriteString("[summary]\n")
	b.WriteString(fmt.Sprintf("procs: %d\n", s.Procs))
	b.WriteString(fmt.Sprintf("loop: %g\n", s.Loop))
	if s.HasCPU {
		b.WriteString(fmt.Sprintf("cpu use: %.1f%%\n", s.CPUUse))
	}
	for _, r := range s.Rows {
		b.WriteString(fmt.Sprintf("%s: min=%g avg=%g max=%g\n", r.Name, r.Min, r.Avg, r.Max))
	}

	return b.String()
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
