package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phasetimer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader("").Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "normal", cfg.Timer.Style)
	assert.Equal(t, "nosync", cfg.Timer.Mode)
	assert.Equal(t, []string{"pair", "neigh", "comm", "output", "modify"}, cfg.Phases)
	assert.Equal(t, 4, cfg.Run.Ranks)
	assert.Equal(t, 100, cfg.Run.Steps)
	assert.Equal(t, 1, cfg.Run.Loops)
	assert.Equal(t, 200*time.Microsecond, cfg.Run.Work)
	assert.InDelta(t, 0.25, cfg.Run.Imbalance, 1e-12)
	assert.False(t, cfg.Run.Resume)
	assert.Equal(t, []string{"normal", "nosync"}, cfg.Timer.Args())
}

func TestLoadPrecedence(t *testing.T) {
	path := writeTOML(t, `
phases = ["pair", "kspace", "comm"]

[timer]
style = "full"
mode = "sync"

[run]
ranks = 8
steps = 10
work = "1ms"
`)
	t.Setenv("PHASETIMER_RUN_STEPS", "20")
	t.Setenv("PHASETIMER_TIMER_MODE", "nosync")

	cfg, err := NewLoader(path).Load(map[string]any{"run.ranks": 2})
	require.NoError(t, err)

	assert.Equal(t, "full", cfg.Timer.Style)
	assert.Equal(t, "nosync", cfg.Timer.Mode)
	assert.Equal(t, []string{"pair", "kspace", "comm"}, cfg.Phases)
	assert.Equal(t, 2, cfg.Run.Ranks)
	assert.Equal(t, 20, cfg.Run.Steps)
	assert.Equal(t, time.Millisecond, cfg.Run.Work)

	cs, err := cfg.Categories()
	require.NoError(t, err)
	assert.Equal(t, 5, cs.Count())
}

func TestLoadPhasesFromEnv(t *testing.T) {
	t.Setenv("PHASETIMER_PHASES", "force,io")

	cfg, err := NewLoader("").Load(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"force", "io"}, cfg.Phases)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.toml")).Load(nil)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"style":     {"timer.style": "verbose"},
		"mode":      {"timer.mode": "async"},
		"phases":    {"phases": []string{"pair", "sync"}},
		"ranks":     {"run.ranks": 0},
		"steps":     {"run.steps": -1},
		"loops":     {"run.loops": 0},
		"imbalance": {"run.imbalance": -0.5},
	}
	for name, flags := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader("").Load(flags)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)
		})
	}
}
