package config

import (
	"github.com/BurntSushi/toml"
	"mit.edu/dsg/godist/common"
)

// SeparateConfig tunes the plan separator.
type SeparateConfig struct {
	// Enable2PC is the cluster-wide two-phase commit switch applied to statements that
	// do not carry their own flag.
	Enable2PC bool `toml:"enable-2pc"`

	// MaxPlanNodes bounds the nodes a statement plan may hold, boundary and protocol
	// nodes included. 0 means unbounded.
	MaxPlanNodes int `toml:"max-plan-nodes"`

	// VerifyPlan runs the tree invariant checks after every rewrite.
	VerifyPlan bool `toml:"verify-plan"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is console or json.
	Format string `toml:"format"`
}

type Config struct {
	Separate SeparateConfig `toml:"separate"`
	Log      LogConfig      `toml:"log"`
}

func Default() Config {
	return Config{
		Separate: SeparateConfig{
			Enable2PC:    true,
			MaxPlanNodes: 4096,
			VerifyPlan:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFile reads a TOML file on top of the defaults; keys absent from the file keep
// their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse is LoadFile for in-memory TOML.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Separate.MaxPlanNodes < 0 {
		return common.NewPlanError(common.InvalidConfigError, "separate.max-plan-nodes must not be negative, got %d", c.Separate.MaxPlanNodes)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return common.NewPlanError(common.InvalidConfigError, "log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return common.NewPlanError(common.InvalidConfigError, "log.format %q is not one of console, json", c.Log.Format)
	}
	return nil
}
