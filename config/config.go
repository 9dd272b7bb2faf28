// Package config loads and applies the process-wide settings of rawvec: the
// raw storage limit, debug contract checks and reallocation logging.
package config

import (
	"flag"
	"os"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/wilhasse/rawvec/mem"
	"github.com/wilhasse/rawvec/ut"
	"github.com/wilhasse/rawvec/vec"
)

// Config holds the library settings.
type Config struct {
	// MemoryLimit caps the bytes of raw storage admitted at once. Zero is unlimited.
	MemoryLimit datasize.ByteSize `yaml:"memory_limit"`
	DebugChecks bool              `yaml:"debug_checks"`
	LogLevel    string            `yaml:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DebugChecks: ut.DebugChecks(),
		LogLevel:    "info",
	}
}

// RegisterFlags adds the settings to f with their defaults.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	d := Default()
	*c = d
	f.TextVar(&c.MemoryLimit, "rawvec.memory-limit", d.MemoryLimit, "Maximum bytes of raw storage in use at once (e.g. 64MB). 0 means unlimited.")
	f.BoolVar(&c.DebugChecks, "rawvec.debug-checks", d.DebugChecks, "Panic on contract violations such as out-of-range indexes.")
	f.StringVar(&c.LogLevel, "rawvec.log-level", d.LogLevel, "Log level: debug, info, warn or error.")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MemoryLimit.Bytes() > uint64(1<<62) {
		return errors.Errorf("memory limit %s too large", c.MemoryLimit.HumanReadable())
	}
	return nil
}

// Load reads YAML settings from path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Apply installs a LimitAllocator as mem.DefaultAllocator, sets debug checks
// and routes vec reallocation traces to logger filtered at LogLevel. reg may
// be nil to skip metric registration.
func (c *Config) Apply(logger log.Logger, reg prometheus.Registerer) (*mem.LimitAllocator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	opt, _ := parseLevel(c.LogLevel)
	logger = level.NewFilter(logger, opt)

	var metrics *mem.Metrics
	if reg != nil {
		m, err := mem.NewMetrics(reg)
		if err != nil {
			return nil, errors.Wrap(err, "register allocator metrics")
		}
		metrics = m
	}
	alloc := mem.NewLimitAllocator(int64(c.MemoryLimit.Bytes()), metrics, logger)
	mem.DefaultAllocator = alloc
	ut.SetDebugChecks(c.DebugChecks)
	vec.SetLogger(logger)

	level.Info(logger).Log(
		"msg", "rawvec configured",
		"memory_limit", c.MemoryLimit.HumanReadable(),
		"debug_checks", c.DebugChecks,
	)
	return alloc, nil
}

func parseLevel(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, errors.Errorf("unknown log level %q", s)
	}
}
