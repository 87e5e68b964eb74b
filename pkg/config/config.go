package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all hackertarget CLI configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Batch   BatchConfig   `yaml:"batch"`
	History HistoryConfig `yaml:"history"`
}

// APIConfig controls the HackerTarget API client.
type APIConfig struct {
	Key        string        `yaml:"key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	VerifySSL  bool          `yaml:"verify_ssl"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Colored bool   `yaml:"colored"`
}

// CacheConfig controls the response cache. Caching is opt-in.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Directory string        `yaml:"directory"`
	TTL       time.Duration `yaml:"ttl"`
}

// OutputConfig controls result formatting.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Colored bool   `yaml:"colored"`
}

// BatchConfig controls batch query behavior.
type BatchConfig struct {
	Delay           time.Duration `yaml:"delay"`
	ContinueOnError bool          `yaml:"continue_on_error"`
}

// HistoryConfig controls the query history log.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			VerifySSL:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Colored: true,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Directory: defaultCacheDir(),
			TTL:       time.Hour,
		},
		Output: OutputConfig{
			Format:  "console",
			Colored: true,
		},
		Batch: BatchConfig{
			Delay:           time.Second,
			ContinueOnError: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".hackertarget", "cache")
	}
	return filepath.Join(home, ".hackertarget", "cache")
}

// DefaultPath returns the preferred location for a new config file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hackertarget.yaml"
	}
	return filepath.Join(home, ".hackertarget.yaml")
}

// defaultLocations lists the config files probed when no path is given.
func defaultLocations() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".hackertarget.yaml"),
			filepath.Join(home, ".hackertarget.yml"),
			filepath.Join(home, ".config", "hackertarget", "config.yaml"),
		)
	}
	paths = append(paths, ".hackertarget.yaml")
	return paths
}

// Load reads a YAML config file and expands environment variables.
// When path is empty the default locations are probed and a missing file
// is not an error; HACKERTARGET_* environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, candidate := range defaultLocations() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HACKERTARGET_API_KEY"); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv("HACKERTARGET_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("HACKERTARGET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HACKERTARGET_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("HACKERTARGET_CACHE_DIR"); v != "" {
		c.Cache.Directory = v
	}
	if v := os.Getenv("HACKERTARGET_CACHE_ENABLED"); v != "" {
		c.Cache.Enabled = parseBool(v)
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Get returns the value at a dotted key such as "cache.ttl".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.key":
		return c.API.Key, nil
	case "api.timeout":
		return c.API.Timeout.String(), nil
	case "api.max_retries":
		return strconv.Itoa(c.API.MaxRetries), nil
	case "api.verify_ssl":
		return strconv.FormatBool(c.API.VerifySSL), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	case "logging.colored":
		return strconv.FormatBool(c.Logging.Colored), nil
	case "cache.enabled":
		return strconv.FormatBool(c.Cache.Enabled), nil
	case "cache.directory":
		return c.Cache.Directory, nil
	case "cache.ttl":
		return c.Cache.TTL.String(), nil
	case "output.format":
		return c.Output.Format, nil
	case "output.colored":
		return strconv.FormatBool(c.Output.Colored), nil
	case "batch.delay":
		return c.Batch.Delay.String(), nil
	case "batch.continue_on_error":
		return strconv.FormatBool(c.Batch.ContinueOnError), nil
	case "history.enabled":
		return strconv.FormatBool(c.History.Enabled), nil
	}
	return "", fmt.Errorf("unknown config key: %s", key)
}

// Set updates the value at a dotted key such as "api.key".
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.key":
		c.API.Key = value
	case "api.timeout":
		d, err := parseDuration(value)
		if err != nil {
			return err
		}
		c.API.Timeout = d
	case "api.max_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", key, value)
		}
		c.API.MaxRetries = n
	case "api.verify_ssl":
		c.API.VerifySSL = parseBool(value)
	case "logging.level":
		c.Logging.Level = value
	case "logging.file":
		c.Logging.File = value
	case "logging.colored":
		c.Logging.Colored = parseBool(value)
	case "cache.enabled":
		c.Cache.Enabled = parseBool(value)
	case "cache.directory":
		c.Cache.Directory = value
	case "cache.ttl":
		d, err := parseDuration(value)
		if err != nil {
			return err
		}
		c.Cache.TTL = d
	case "output.format":
		c.Output.Format = value
	case "output.colored":
		c.Output.Colored = parseBool(value)
	case "batch.delay":
		d, err := parseDuration(value)
		if err != nil {
			return err
		}
		c.Batch.Delay = d
	case "batch.continue_on_error":
		c.Batch.ContinueOnError = parseBool(value)
	case "history.enabled":
		c.History.Enabled = parseBool(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// parseDuration accepts Go duration strings and bare second counts.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}
	return d, nil
}
