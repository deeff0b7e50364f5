package phasetimer

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// fakeGroup is a single-rank process group whose clock only moves when told.
type fakeGroup struct {
	rank     int
	now      float64
	wait     float64
	barriers int
}

func (g *fakeGroup) Barrier() {
	g.barriers++
	g.now += g.wait
}

func (g *fakeGroup) Now() float64 { return g.now }

func (g *fakeGroup) Rank() int { return g.rank }

type fakeCPU struct {
	now   float64
	reads int
}

func (c *fakeCPU) CPUSeconds() float64 {
	c.reads++
	return c.now
}

type fatalRecorder struct {
	errs  []error
	where []string
}

func (f *fatalRecorder) Fatal(err error, where string) {
	f.errs = append(f.errs, err)
	f.where = append(f.where, where)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

type fixture struct {
	group *fakeGroup
	cpu   *fakeCPU
	fatal *fatalRecorder
	sink  *bytes.Buffer
	cats  *Categories
	timer *Timer

	pair, comm, output Category
}

func newFixture(rank int) *fixture {
	cats, err := NewCategories("pair", "comm", "output")
	if err != nil {
		panic(err)
	}
	f := &fixture{
		group: &fakeGroup{rank: rank},
		cpu:   &fakeCPU{},
		fatal: &fatalRecorder{},
		sink:  &bytes.Buffer{},
		cats:  cats,
	}
	f.pair, _ = cats.Lookup("pair")
	f.comm, _ = cats.Lookup("comm")
	f.output, _ = cats.Lookup("output")

	f.timer = NewTimerBuilder().
		WithCategories(cats).
		WithCPUClock(f.cpu).
		WithFatal(f.fatal).
		WithSinks(f.sink).
		NewTimer(f.group)
	return f
}

// advance moves both clocks forward.
func (f *fixture) advance(wall, cpu float64) {
	f.group.now += wall
	f.cpu.now += cpu
}
