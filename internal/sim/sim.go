// Package sim drives a synthetic iterative loop on a local process group,
// timing every phase with a phasetimer.Timer per rank.
package sim

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/onegii/go-phasetimer/internal/config"
	"github.com/onegii/go-phasetimer/internal/procgroup"
	"github.com/onegii/go-phasetimer/phasetimer"
)

// Result holds the per-rank snapshots of the last loop and their summary.
type Result struct {
	Snapshots []phasetimer.Snapshot
	Summary   *phasetimer.Summary
}

// Runner runs the loop described by a configuration.
type Runner struct {
	cfg    *config.Config
	out    io.Writer
	logger *slog.Logger
	cpu    phasetimer.CPUClock
	work   func(d time.Duration)
}

// NewRunner returns a runner writing timer confirmation lines to out.
func NewRunner(cfg *config.Config, out io.Writer, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		out:    out,
		logger: logger,
		cpu:    phasetimer.ProcessCPU,
		work:   spin,
	}
}

// Run executes cfg.Run.Loops loop invocations on cfg.Run.Ranks ranks.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cats, err := r.cfg.Categories()
	if err != nil {
		return nil, err
	}
	g, err := procgroup.New(r.cfg.Run.Ranks)
	if err != nil {
		return nil, err
	}

	builder := phasetimer.NewTimerBuilder().
		WithCategories(cats).
		WithCPUClock(r.cpu).
		WithSinks(r.out)

	var mu sync.Mutex
	snaps := make([]phasetimer.Snapshot, g.Size())

	err = g.Run(ctx, func(ctx context.Context, p *procgroup.Proc) error {
		t := builder.Copy().NewTimer(p)
		if err := t.ModifyParams(r.cfg.Timer.Args()...); err != nil {
			return err
		}

		s, err := r.rank(ctx, p, t)
		if err != nil {
			return err
		}

		mu.Lock()
		snaps[p.Rank()] = s
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sum, err := phasetimer.Summarize(snaps)
	if err != nil {
		return nil, err
	}
	sum.SharedCPU = g.Size() > 1
	return &Result{Snapshots: snaps, Summary: sum}, nil
}

// rank runs every loop of one rank and returns its final snapshot.
func (r *Runner) rank(ctx context.Context, p *procgroup.Proc, t *phasetimer.Timer) (phasetimer.Snapshot, error) {
	phases := t.Categories().Phases()
	share := r.share(p)

	var carried, carriedCPU float64
	for loop := 0; loop < r.cfg.Run.Loops; loop++ {
		if loop == 0 || !r.cfg.Run.Resume {
			t.Init()
			carried, carriedCPU = 0, 0
		}

		t.BarrierStart()
		for step := 0; step < r.cfg.Run.Steps; step++ {
			if err := ctx.Err(); err != nil {
				return phasetimer.Snapshot{}, err
			}
			for _, c := range phases {
				r.work(share)
				t.Stamp(c)
			}
		}
		t.BarrierStop()

		// TOTAL only spans the last loop; restore the running sum on resume.
		if r.cfg.Run.Resume {
			carried += t.Wall(phasetimer.Total)
			carriedCPU += t.CPU(phasetimer.Total)
			t.SetWall(phasetimer.Total, carried)
		}

		if p.Rank() == 0 {
			r.logger.Debug("loop finished",
				slog.Int("loop", loop),
				slog.Float64("seconds", t.Wall(phasetimer.Total)))
		}
	}

	s := t.Snapshot()
	if r.cfg.Run.Resume {
		s.LoopCPU = carriedCPU
	}
	return s, nil
}

// share is the per-phase work of rank p, growing linearly from cfg.Run.Work
// on rank 0 to (1+Imbalance)*cfg.Run.Work on the last rank.
func (r *Runner) share(p *procgroup.Proc) time.Duration {
	base := r.cfg.Run.Work
	if p.Size() < 2 {
		return base
	}
	f := r.cfg.Run.Imbalance * float64(p.Rank()) / float64(p.Size()-1)
	return base + time.Duration(f*float64(base))
}

// spin keeps the CPU busy for d.
func spin(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
