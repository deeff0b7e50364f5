// Package procgroup runs a fixed set of ranks as goroutines of one process
// and gives each of them the collective operations of a process group: a
// reusable barrier, a wall clock shared by all ranks and a rank id.
package procgroup

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSize is returned by [New] for a group without ranks.
var ErrInvalidSize = errors.New("process group needs at least one rank")

// Group is a set of ranks sharing one barrier and one clock.
// Its zero value has no meaning. A Group should always be instantiated
// using [New].
type Group struct {
	size  int
	epoch time.Time

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	gen     uint64
	broken  bool
}

// New returns a group of size ranks whose clock starts now.
func New(size int) (*Group, error) {
	if size < 1 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	g := &Group{
		size:  size,
		epoch: time.Now(),
	}
	g.cond = sync.NewCond(&g.mu)
	return g, nil
}

// Size returns the number of ranks.
func (g *Group) Size() int { return g.size }

// Now returns the seconds elapsed since the group was created. The reading
// is monotonic and identical in meaning for every rank.
func (g *Group) Now() float64 {
	return time.Since(g.epoch).Seconds()
}

// barrier blocks until size callers have arrived, then releases them all.
// Once the group is broken every call returns immediately.
func (g *Group) barrier() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.broken {
		return
	}

	gen := g.gen
	g.arrived++
	if g.arrived == g.size {
		g.arrived = 0
		g.gen++
		g.cond.Broadcast()
		return
	}
	for gen == g.gen && !g.broken {
		g.cond.Wait()
	}
}

// abort releases every rank blocked in the barrier and disables it, so the
// surviving ranks of a failed job can run to completion instead of hanging.
func (g *Group) abort() {
	g.mu.Lock()
	g.broken = true
	g.cond.Broadcast()
	g.mu.Unlock()
}

// Proc returns the handle of rank r.
func (g *Group) Proc(r int) *Proc {
	return &Proc{group: g, rank: r}
}

// Run calls fn once per rank, each on its own goroutine, and waits for all of
// them. The first error aborts the barrier and is returned.
func (g *Group) Run(ctx context.Context, fn func(ctx context.Context, p *Proc) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	for r := 0; r < g.size; r++ {
		p := g.Proc(r)
		eg.Go(func() error {
			if err := fn(ctx, p); err != nil {
				g.abort()
				return errors.Wrapf(err, "rank %d", p.rank)
			}
			return nil
		})
	}
	return eg.Wait()
}

// Proc is the view of the group held by one rank.
type Proc struct {
	group *Group
	rank  int
}

// Barrier blocks until every rank of the group has called Barrier.
func (p *Proc) Barrier() { p.group.barrier() }

// Now returns the shared wall clock in seconds.
func (p *Proc) Now() float64 { return p.group.Now() }

// Rank returns the rank id, 0 being the root.
func (p *Proc) Rank() int { return p.rank }

// Size returns the number of ranks in the group.
func (p *Proc) Size() int { return p.group.size }
