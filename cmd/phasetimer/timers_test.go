package main

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onegii/go-phasetimer/internal/config"
	"github.com/onegii/go-phasetimer/phasetimer"
)

func TestApplyKeyword(t *testing.T) {
	tc := config.TimerConfig{Style: "normal", Mode: "nosync"}

	require.NoError(t, applyKeyword(&tc, "full"))
	require.NoError(t, applyKeyword(&tc, "sync"))
	assert.Equal(t, []string{"full", "sync"}, tc.Args())

	err := applyKeyword(&tc, "fast")
	assert.True(t, errors.Is(err, phasetimer.ErrIllegalTimers))
	assert.Equal(t, "full", tc.Style)
}

func TestChangedFlags(t *testing.T) {
	require.NoError(t, runCmd.Flags().Set("ranks", "6"))
	require.NoError(t, runCmd.Flags().Set("phases", "pair,comm"))
	require.NoError(t, runCmd.Flags().Set("work", "2ms"))

	flags, err := changedFlags(runCmd)
	require.NoError(t, err)

	assert.Equal(t, 6, flags["run.ranks"])
	assert.Equal(t, []string{"pair", "comm"}, flags["phases"])
	assert.NotContains(t, flags, "run.steps")

	cfg, err := config.NewLoader("").Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Run.Ranks)
	assert.Equal(t, "2ms", cfg.Run.Work.String())
}
