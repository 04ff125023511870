package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CANVASRT_"

// Config holds the settings of the canvasrt tool.
type Config struct {
	BaseDir   string          `yaml:"-"` // directory of the config file, for relative paths
	Fixtures  string          `yaml:"fixtures"`
	PackageDB string          `yaml:"package_db"`
	Logging   LoggingConfig   `yaml:"logging"`
	Evaluator EvaluatorConfig `yaml:"evaluator"`
}

type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // debug, info, warn, error
}

type EvaluatorConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Fixtures: "internal/conformance/testdata",
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Evaluator: EvaluatorConfig{
			MaxDepth: DefaultMaxEvalDepth,
		},
	}
}

// Load reads a YAML config file, interpolating ${VAR} references through
// getenv, then applies CANVASRT_* overrides. An empty path yields Defaults
// with overrides.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		data, err := os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		data = interpolateEnv(data, getenv)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		cfg.BaseDir = filepath.Dir(absPath)
	}

	if err := cfg.FromEnv(getenv); err != nil {
		return nil, err
	}
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv applies CANVASRT_* environment overrides.
func (c *Config) FromEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "FIXTURES"); v != "" {
		c.Fixtures = v
	}
	if v := getenv(EnvPrefix + "PACKAGE_DB"); v != "" {
		c.PackageDB = v
	}
	if v := getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(EnvPrefix + "MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_DEPTH must be an integer: %w", EnvPrefix, err)
		}
		c.Evaluator.MaxDepth = n
	}
	return nil
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Evaluator.MaxDepth <= 0 {
		return fmt.Errorf("evaluator.max_depth must be positive, got %d", c.Evaluator.MaxDepth)
	}
	return nil
}

func (c *Config) resolvePaths() {
	if c.BaseDir == "" {
		return
	}
	if c.Fixtures != "" && !filepath.IsAbs(c.Fixtures) {
		c.Fixtures = filepath.Join(c.BaseDir, c.Fixtures)
	}
	if c.PackageDB != "" && !filepath.IsAbs(c.PackageDB) {
		c.PackageDB = filepath.Join(c.BaseDir, c.PackageDB)
	}
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnv replaces ${VAR} with the value of VAR. Unset variables
// become empty strings.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		return []byte(getenv(string(name)))
	})
}
