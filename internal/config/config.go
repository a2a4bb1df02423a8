package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/projectfs/internal/shared/paths"
)

// ConfigFileEnv names the environment variable holding an optional YAML file path
const ConfigFileEnv = "PROJECTFS_CONFIG"

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Project   ProjectConfig   `yaml:"project"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port string `yaml:"port" envconfig:"PORT"`
	Host string `yaml:"host" envconfig:"HOST"`
}

// ProjectConfig holds sandbox settings
type ProjectConfig struct {
	// Root is the default project root; empty means the working directory.
	Root     string `yaml:"root" envconfig:"PROJECTFS_ROOT"`
	MaxDepth int    `yaml:"max_depth" envconfig:"PROJECTFS_MAX_DEPTH"`
	// Exclude extends the default exclusion set with names or doublestar patterns.
	Exclude []string `yaml:"exclude" envconfig:"PROJECTFS_EXCLUDE"`
}

// SearchConfig holds search guards
type SearchConfig struct {
	MaxResults  int   `yaml:"max_results" envconfig:"PROJECTFS_SEARCH_MAX_RESULTS"`
	MaxFileSize int64 `yaml:"max_file_size" envconfig:"PROJECTFS_SEARCH_MAX_FILE_SIZE"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Development bool   `yaml:"development" envconfig:"LOG_DEV"`
}

// RateLimitConfig holds per-IP rate limiting settings
type RateLimitConfig struct {
	RequestsPerSecond int  `yaml:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int  `yaml:"burst" envconfig:"RATE_LIMIT_BURST"`
	Enabled           bool `yaml:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "127.0.0.1",
		},
		Search: SearchConfig{
			MaxResults:  100,
			MaxFileSize: 1_000_000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Load reads configuration from defaults, the optional file named by
// PROJECTFS_CONFIG, then the environment.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// Unset variables leave file and default values in place
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cfg.Project.Exclude = normalizeList(cfg.Project.Exclude)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration, falling back to defaults on error
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("search max results must be positive, got %d", c.Search.MaxResults))
	}
	if c.Search.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("search max file size must be positive, got %d", c.Search.MaxFileSize))
	}
	if c.Project.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", c.Project.MaxDepth))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate limit requires positive requests_per_second and burst"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Exclusions returns the default exclusion set extended with Project.Exclude
func (c *Config) Exclusions() paths.Exclusions {
	return paths.DefaultExclusions().With(c.Project.Exclude...)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
