// Package config loads mentorchat settings from TOML files and the environment.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor/reply"
	"github.com/longkey1/mentorchat/internal/mentor/variant"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "MENTORCHAT"

// Session store backends
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Themes
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds the configuration for mentorchat
type Config struct {
	Variant              string   `toml:"variant" mapstructure:"variant"`
	VariantDirs          []string `toml:"variant_dirs" mapstructure:"variant_dirs"`
	ReplyDelay           string   `toml:"reply_delay" mapstructure:"reply_delay"`     // Go duration, e.g. "1s"; empty uses the variant's delay
	SessionStore         string   `toml:"session_store" mapstructure:"session_store"` // "json" or "sqlite"
	SessionDir           string   `toml:"session_dir" mapstructure:"session_dir"`
	SaveSessions         bool     `toml:"save_sessions" mapstructure:"save_sessions"`
	SessionRetentionDays int      `toml:"session_retention_days" mapstructure:"session_retention_days"` // 0 = keep forever
	LogFile              string   `toml:"log_file" mapstructure:"log_file"`
	Theme                string   `toml:"theme" mapstructure:"theme"`
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(configDir string) *Config {
	return &Config{
		Variant: variant.DefaultName,
		VariantDirs: []string{
			"/usr/share/mentorchat/variants",       // System package variants (lowest priority)
			"/usr/local/share/mentorchat/variants", // Local install variants
			filepath.Join(configDir, "variants"),   // User-specific variants (highest priority)
		},
		ReplyDelay:           "",
		SessionStore:         StoreJSON,
		SessionDir:           filepath.Join(configDir, "sessions"),
		SaveSessions:         true,
		SessionRetentionDays: 30,
		LogFile:              filepath.Join(configDir, "mentorchat.log"),
		Theme:                ThemeDark,
	}
}

// SetDefaults registers the values of def as viper defaults.
func SetDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("variant", def.Variant)
	v.SetDefault("variant_dirs", def.VariantDirs)
	v.SetDefault("reply_delay", def.ReplyDelay)
	v.SetDefault("session_store", def.SessionStore)
	v.SetDefault("session_dir", def.SessionDir)
	v.SetDefault("save_sessions", def.SaveSessions)
	v.SetDefault("session_retention_days", def.SessionRetentionDays)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("theme", def.Theme)
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	for i, dir := range config.VariantDirs {
		absPath, err := resolveConfigPath(v, dir)
		if err != nil {
			return nil, fmt.Errorf("error resolving variant directory path '%s': %w", dir, err)
		}
		config.VariantDirs[i] = absPath
	}

	var err error
	if config.SessionDir, err = resolveConfigPath(v, config.SessionDir); err != nil {
		return nil, fmt.Errorf("error resolving session directory path '%s': %w", config.SessionDir, err)
	}
	if config.LogFile != "" {
		if config.LogFile, err = resolveConfigPath(v, config.LogFile); err != nil {
			return nil, fmt.Errorf("error resolving log file path '%s': %w", config.LogFile, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks enumerated and numeric fields.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unsupported session_store %q (expected %q or %q)", c.SessionStore, StoreJSON, StoreSQLite)
	}
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unsupported theme %q (expected %q or %q)", c.Theme, ThemeDark, ThemeLight)
	}
	if c.SessionRetentionDays < 0 {
		return fmt.Errorf("session_retention_days cannot be negative")
	}
	if _, err := c.GetReplyDelay(reply.DefaultDelay); err != nil {
		return err
	}
	return nil
}

// GetReplyDelay returns the configured reply delay, or fallback when unset.
func (c *Config) GetReplyDelay(fallback time.Duration) (time.Duration, error) {
	if c.ReplyDelay == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(c.ReplyDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid reply_delay %q: %w", c.ReplyDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("reply_delay cannot be negative")
	}
	return d, nil
}

// Retention returns how long saved sessions are kept, zero meaning forever.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.SessionRetentionDays) * 24 * time.Hour
}
