package phasetimer

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownStyle is returned by [ParseLevel] for a word outside off|loop|normal|full.
	ErrUnknownStyle = errors.New("unknown timer style")

	// ErrUnknownMode is returned by [ParseSyncMode] for a word outside nosync|sync.
	ErrUnknownMode = errors.New("unknown timer mode")
)

// Level is the timer verbosity. CPU time is only sampled above [LevelNormal].
type Level int

const (
	LevelOff Level = iota
	LevelLoop
	LevelNormal
	LevelFull
)

var levelNames = [...]string{"off", "loop", "normal", "full"}

func (l Level) String() string {
	if l < LevelOff || l > LevelFull {
		return "unknown"
	}
	return levelNames[l]
}

// samplesCPU reports whether stamps at this level read the CPU clock.
func (l Level) samplesCPU() bool {
	return l > LevelNormal
}

// ParseLevel maps a case-sensitive style keyword to its Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelOff, errors.Wrapf(ErrUnknownStyle, "%q", s)
}

// SyncMode selects whether every stamp is followed by a collective barrier.
type SyncMode int

const (
	SyncOff SyncMode = iota
	SyncOn
)

func (m SyncMode) String() string {
	switch m {
	case SyncOff:
		return "nosync"
	case SyncOn:
		return "sync"
	}
	return "unknown"
}

// ParseSyncMode maps a case-sensitive mode keyword to its SyncMode.
func ParseSyncMode(s string) (SyncMode, error) {
	switch s {
	case "nosync":
		return SyncOff, nil
	case "sync":
		return SyncOn, nil
	}
	return SyncOff, errors.Wrapf(ErrUnknownMode, "%q", s)
}
