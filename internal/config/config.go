package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete kanon configuration.
// Loaded from .kanon/config.json with KANON_* environment overrides.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Limits  LimitsConfig  `json:"limits" mapstructure:"limits"`
	Digest  DigestConfig  `json:"digest" mapstructure:"digest"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Batch   BatchConfig   `json:"batch" mapstructure:"batch"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LimitsConfig bounds document shape before and during canonicalization
type LimitsConfig struct {
	MaxDepth         int `json:"maxDepth" mapstructure:"maxDepth"`
	MaxDocumentBytes int `json:"maxDocumentBytes" mapstructure:"maxDocumentBytes"`
}

// DigestConfig selects the content digest algorithm
type DigestConfig struct {
	Algo string `json:"algo" mapstructure:"algo"`
}

// CacheConfig controls the digest cache
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// BatchConfig controls the batch runner
type BatchConfig struct {
	Workers int `json:"workers" mapstructure:"workers"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Limits: LimitsConfig{
			MaxDepth:         512,
			MaxDocumentBytes: 32 << 20,
		},
		Digest: DigestConfig{
			Algo: "sha256",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".kanon",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.kanon/config.json.
// Precedence: KANON_* environment variables > config file > defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("limits.maxDepth", def.Limits.MaxDepth)
	v.SetDefault("limits.maxDocumentBytes", def.Limits.MaxDocumentBytes)
	v.SetDefault("digest.algo", def.Digest.Algo)
	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.dir", def.Cache.Dir)
	v.SetDefault("batch.workers", def.Batch.Workers)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix("KANON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".kanon"))

	if err := v.ReadInConfig(); err != nil {
		// Missing config file means defaults plus env.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <root>/.kanon/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".kanon")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Limits.MaxDepth <= 0 {
		return &ConfigError{Field: "limits.maxDepth", Message: "must be positive"}
	}
	if c.Batch.Workers <= 0 {
		return &ConfigError{Field: "batch.workers", Message: "must be positive"}
	}
	switch c.Digest.Algo {
	case "sha256", "sha3-256", "blake2b-256":
	default:
		return &ConfigError{Field: "digest.algo", Message: "unknown algorithm"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
