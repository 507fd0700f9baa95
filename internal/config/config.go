// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	OMDb     OMDbConfig     `toml:"omdb"`
	Cache    CacheConfig    `toml:"cache"`
	Retry    RetryConfig    `toml:"retry"`
	Storage  StorageConfig  `toml:"storage"`
	Trending TrendingConfig `toml:"trending"`
	Batch    BatchConfig    `toml:"batch"`
	Log      LogConfig      `toml:"log"`
}

type OMDbConfig struct {
	APIKey  string        `toml:"api_key"`
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
	// RateLimit is requests per second; 0 disables throttling.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

type CacheConfig struct {
	TTL time.Duration `toml:"ttl"`
}

type RetryConfig struct {
	MaxAttempts int           `toml:"max_attempts"`
	BaseDelay   time.Duration `toml:"base_delay"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type TrendingConfig struct {
	Seeds      []string `toml:"seeds"`
	Limit      int      `toml:"limit"`
	BestEffort bool     `toml:"best_effort"`
}

type BatchConfig struct {
	// Concurrency caps parallel lookups; 0 is unlimited.
	Concurrency int `toml:"concurrency"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// APIKeyEnv is read when no config file sets an API key.
const APIKeyEnv = "OMDB_API_KEY"

// Defaults.
const (
	DefaultBaseURL       = "https://www.omdbapi.com/"
	DefaultTimeout       = 10 * time.Second
	DefaultCacheTTL      = time.Hour
	DefaultMaxAttempts   = 3
	DefaultBaseDelay     = time.Second
	DefaultDriver        = "sqlite"
	DefaultTrendingLimit = 12
	DefaultLogLevel      = "info"
)

// DefaultSeeds are the searches behind the trending list.
var DefaultSeeds = []string{"Avatar", "Inception", "Interstellar"}

// Default returns the configuration used when no file is found. The API
// key comes from OMDB_API_KEY.
func Default() *Config {
	cfg := &Config{}
	cfg.OMDb.APIKey = os.Getenv(APIKeyEnv)
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = DefaultBaseURL
	}
	if c.OMDb.Timeout == 0 {
		c.OMDb.Timeout = DefaultTimeout
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = DefaultBaseDelay
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DefaultDriver
	}
	if c.Storage.Path == "" && c.Storage.Driver != "memory" {
		c.Storage.Path = DefaultDataPath(c.Storage.Driver)
	}
	if len(c.Trending.Seeds) == 0 {
		c.Trending.Seeds = append([]string(nil), DefaultSeeds...)
	}
	if c.Trending.Limit == 0 {
		c.Trending.Limit = DefaultTrendingLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Load reads, parses and validates the configuration file.
// Unresolved environment variables and validation failures are reported
// together as an *Error.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the file, applying defaults only.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

// Resolve loads the config at path. With an empty path it discovers one,
// and when none exists it falls back to Default. The returned path is
// empty in that case.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		found, err := Discover()
		if errors.Is(err, ErrNotFound) {
			return Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.OMDb.APIKey == "" {
		cfg.OMDb.APIKey = os.Getenv(APIKeyEnv)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references in content. It returns
// the expanded text and a description of every reference it could not
// resolve; unresolved references are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
