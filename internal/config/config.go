// Package config loads the settings of the phasetimer driver.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/onegii/go-phasetimer/phasetimer"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override, e.g. PHASETIMER_RUN_RANKS.
const EnvPrefix = "PHASETIMER_"

// Config is the full driver configuration.
type Config struct {
	Timer  TimerConfig `koanf:"timer"`
	Phases []string    `koanf:"phases"`
	Run    RunConfig   `koanf:"run"`
}

// TimerConfig holds the keywords handed to Timer.ModifyParams.
type TimerConfig struct {
	Style string `koanf:"style"`
	Mode  string `koanf:"mode"`
}

// RunConfig describes the simulated loop.
type RunConfig struct {
	Ranks int           `koanf:"ranks"`
	Steps int           `koanf:"steps"`
	Loops int           `koanf:"loops"`
	Work  time.Duration `koanf:"work"`

	// Imbalance is the extra work of the last rank relative to rank 0.
	Imbalance float64 `koanf:"imbalance"`

	// Resume keeps accumulators across loops instead of zeroing them.
	Resume bool `koanf:"resume"`
}

// Args returns the ModifyParams tokens for the configured style and mode.
func (c TimerConfig) Args() []string {
	return []string{c.Style, c.Mode}
}

func defaults() map[string]any {
	return map[string]any{
		"timer.style":   phasetimer.LevelNormal.String(),
		"timer.mode":    phasetimer.SyncOff.String(),
		"phases":        []string{"pair", "neigh", "comm", "output", "modify"},
		"run.ranks":     4,
		"run.steps":     100,
		"run.loops":     1,
		"run.work":      "200us",
		"run.imbalance": 0.25,
		"run.resume":    false,
	}
}

// Loader reads configuration from defaults, an optional TOML file, the
// environment and flags, each overriding the previous.
type Loader struct {
	k         *koanf.Koanf
	path      string
	unmarshal koanf.UnmarshalConf
}

// NewLoader returns a loader reading the TOML file at path. An empty path
// skips the file.
func NewLoader(path string) *Loader {
	return &Loader{
		k:    koanf.New("."),
		path: path,
		unmarshal: koanf.UnmarshalConf{
			Tag:       "koanf",
			FlatPaths: false,
		},
	}
}

// Load merges all sources and validates the result. flags holds dotted keys
// such as "run.ranks" set on the command line.
func (l *Loader) Load(flags map[string]any) (*Config, error) {
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if l.path != "" {
		if _, err := os.Stat(l.path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", l.path)
		}
		if err := l.k.Load(file.Provider(l.path), tomlparser.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", l.path)
		}
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}
	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, l.unmarshal); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform maps PHASETIMER_RUN_RANKS to run.ranks. PHASETIMER_PHASES is
// a comma separated list.
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", ".")

	if key == "phases" {
		return key, strings.Split(value, ",")
	}
	return key, value
}

// Validate checks ranges and vocabularies.
func (c *Config) Validate() error {
	if _, err := phasetimer.ParseLevel(c.Timer.Style); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := phasetimer.ParseSyncMode(c.Timer.Mode); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := phasetimer.NewCategories(c.Phases...); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	switch {
	case c.Run.Ranks < 1:
		return errors.Wrapf(ErrInvalidConfig, "run.ranks must be positive, got %d", c.Run.Ranks)
	case c.Run.Steps < 0:
		return errors.Wrapf(ErrInvalidConfig, "run.steps must not be negative, got %d", c.Run.Steps)
	case c.Run.Loops < 1:
		return errors.Wrapf(ErrInvalidConfig, "run.loops must be positive, got %d", c.Run.Loops)
	case c.Run.Work < 0:
		return errors.Wrapf(ErrInvalidConfig, "run.work must not be negative, got %s", c.Run.Work)
	case c.Run.Imbalance < 0:
		return errors.Wrapf(ErrInvalidConfig, "run.imbalance must not be negative, got %g", c.Run.Imbalance)
	}
	return nil
}

// Categories builds the category set of the configured phases.
func (c *Config) Categories() (*phasetimer.Categories, error) {
	return phasetimer.NewCategories(c.Phases...)
}
