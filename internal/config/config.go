package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/extsort/internal/logger"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override the config file.
const EnvPrefix = "EXTSORT"

// Config represents extsort configuration options
type Config struct {
	// MaxConcurrency caps in-flight copies (0 = one goroutine per file)
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogFile is the file log lines are appended to
	LogFile string `yaml:"log_file"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Exclude holds doublestar patterns, relative to the source root, that are not copied
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrency: 0, // Unlimited
		LogFile:        "log",
		LogLevel:       "info",
		Exclude:        nil,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.MaxConcurrency != 0 {
		cfg.MaxConcurrency = fileCfg.MaxConcurrency
	}
	if fileCfg.LogFile != "" {
		cfg.LogFile = fileCfg.LogFile
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if len(fileCfg.Exclude) > 0 {
		cfg.Exclude = fileCfg.Exclude
	}

	return cfg, nil
}

// envOverrides mirrors Config for environment variables.
// Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	MaxConcurrency *int     `envconfig:"MAX_CONCURRENCY"`
	LogFile        *string  `envconfig:"LOG_FILE"`
	LogLevel       *string  `envconfig:"LOG_LEVEL"`
	Exclude        []string `envconfig:"EXCLUDE"`
}

// ApplyEnv overrides configuration values with EXTSORT_* environment variables.
// EXTSORT_EXCLUDE is a comma-separated list of patterns.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if env.MaxConcurrency != nil {
		c.MaxConcurrency = *env.MaxConcurrency
	}
	if env.LogFile != nil {
		c.LogFile = *env.LogFile
	}
	if env.LogLevel != nil {
		c.LogLevel = *env.LogLevel
	}
	if len(env.Exclude) > 0 {
		c.Exclude = env.Exclude
	}

	return nil
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	if !logger.IsValidLevel(strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}

	if strings.TrimSpace(c.LogFile) == "" {
		return fmt.Errorf("log_file cannot be empty")
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}
