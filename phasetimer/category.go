package phasetimer

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateCategory is returned when a phase name appears more than once.
	ErrDuplicateCategory = errors.New("duplicate timer category")

	// ErrReservedCategory is returned when a phase reuses a reserved name or is empty.
	ErrReservedCategory = errors.New("reserved timer category")
)

// Category identifies one timing bucket of a [Categories] set.
type Category int

// Total is the whole-loop bucket. It is always index 0 and is written only by
// [Timer.BarrierStart] and [Timer.BarrierStop].
const Total Category = 0

const (
	totalName = "total"
	syncName  = "sync"
)

// Categories is the closed enumeration TOTAL, phases..., SYNC of one timer.
// Its zero value has no meaning. It should always be built with
// [NewCategories] or [DefaultCategories].
type Categories struct {
	names []string
	index map[string]Category
}

// NewCategories builds a category set with the given phases between the
// reserved TOTAL and SYNC buckets, in the given order.
func NewCategories(phases ...string) (*Categories, error) {
	cs := &Categories{
		names: make([]string, 0, len(phases)+2),
		index: make(map[string]Category, len(phases)+2),
	}

	cs.add(totalName)
	for _, p := range phases {
		key := strings.ToLower(p)
		if key == "" || key == totalName || key == syncName {
			return nil, errors.Wrapf(ErrReservedCategory, "phase %q", p)
		}
		if _, ok := cs.index[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateCategory, "phase %q", p)
		}
		cs.add(key)
	}
	cs.add(syncName)

	return cs, nil
}

// DefaultCategories returns the classic molecular dynamics breakdown:
// pair, bond, kspace, neigh, comm, output and modify.
func DefaultCategories() *Categories {
	cs, err := NewCategories("pair", "bond", "kspace", "neigh", "comm", "output", "modify")
	if err != nil {
		panic(err)
	}
	return cs
}

func (cs *Categories) add(name string) {
	cs.index[name] = Category(len(cs.names))
	cs.names = append(cs.names, name)
}

// Sync returns the barrier wait bucket, always the last valid index.
func (cs *Categories) Sync() Category {
	return Category(len(cs.names) - 1)
}

// Count returns the number of categories including TOTAL and SYNC. It is
// the exclusive upper bound of valid indices.
func (cs *Categories) Count() int {
	return len(cs.names)
}

// Valid reports whether c is an index of the set.
func (cs *Categories) Valid(c Category) bool {
	return c >= Total && int(c) < len(cs.names)
}

// Stampable reports whether a stamp charged to c accumulates, i.e. c lies
// strictly above TOTAL and below Count.
func (cs *Categories) Stampable(c Category) bool {
	return c > Total && int(c) < len(cs.names)
}

// Lookup returns the category with the given case-insensitive name.
func (cs *Categories) Lookup(name string) (Category, bool) {
	c, ok := cs.index[strings.ToLower(name)]
	return c, ok
}

// Name returns the name of c, or "" when c is out of range.
func (cs *Categories) Name(c Category) string {
	if !cs.Valid(c) {
		return ""
	}
	return cs.names[c]
}

// Phases returns the phase categories in display order, excluding TOTAL and SYNC.
func (cs *Categories) Phases() []Category {
	out := make([]Category, 0, len(cs.names)-2)
	for i := 1; i < len(cs.names)-1; i++ {
		out = append(out, Category(i))
	}
	return out
}
