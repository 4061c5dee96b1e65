package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"emblint/internal/core/errors"
)

type Config struct {
	Version       int           `toml:"version"`
	Paths         Paths         `toml:"paths"`
	LintPaths     []string      `toml:"lint_paths"`
	Exclude       Exclude       `toml:"exclude"`
	Rules         Rules         `toml:"rules"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
	Performance   Performance   `toml:"performance"`
}

type Paths struct {
	ProjectRoot string `toml:"project_root"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

// Rules controls which convention rules run and at what severity.
// Enabled/Disabled are mutually exclusive allow/deny lists of rule ids;
// Severity overrides the per-rule default ("error" or "warning").
type Rules struct {
	Enabled  []string          `toml:"enabled"`
	Disabled []string          `toml:"disabled"`
	Severity map[string]string `toml:"severity"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	Text  string `toml:"text"`
	JSON  string `toml:"json"`
	SARIF string `toml:"sarif"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

type Performance struct {
	Workers int `toml:"workers"`
}

const currentVersion = 1

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigError, "decode config")
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = currentVersion
	}
	if cfg.Paths.ProjectRoot == "" {
		cfg.Paths.ProjectRoot = "."
	}
	if len(cfg.LintPaths) == 0 {
		cfg.LintPaths = []string{"app"}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"node_modules", "bower_components", "dist", "tmp", ".git"}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(".emblint", "history.db")
	}
	if cfg.Performance.Workers == 0 {
		cfg.Performance.Workers = 4
	}
}

func validate(cfg *Config) error {
	if cfg.Version != currentVersion {
		return errors.New(errors.CodeConfigError,
			fmt.Sprintf("unsupported config version %d (want %d)", cfg.Version, currentVersion))
	}
	if len(cfg.Rules.Enabled) > 0 && len(cfg.Rules.Disabled) > 0 {
		return errors.New(errors.CodeConfigError, "rules.enabled and rules.disabled are mutually exclusive")
	}
	for id, sev := range cfg.Rules.Severity {
		switch strings.ToLower(sev) {
		case "error", "warning":
		default:
			return errors.New(errors.CodeConfigError,
				fmt.Sprintf("invalid severity %q for rule %q (want error or warning)", sev, id))
		}
	}
	if cfg.Performance.Workers < 1 {
		return errors.New(errors.CodeConfigError, "performance.workers must be at least 1")
	}
	return nil
}
