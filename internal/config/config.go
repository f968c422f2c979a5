// Package config loads daybook settings from a .daybook.yaml file and
// DAYBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDBPath   = "~/.local/share/daybook/daybook.db"
	DefaultBlobDir  = "~/.local/share/daybook/blobs"
	DefaultFileName = ".daybook.yaml"
)

// Config holds every setting the three entrypoints share
type Config struct {
	DB          string `yaml:"db" mapstructure:"db"`
	BlobDir     string `yaml:"blob_dir" mapstructure:"blob_dir"`
	BlobBaseURL string `yaml:"blob_base_url,omitempty" mapstructure:"blob_base_url"`

	// Local identity. An empty UserID means nobody is signed in.
	UserID    string `yaml:"user_id" mapstructure:"user_id"`
	UserEmail string `yaml:"user_email,omitempty" mapstructure:"user_email"`

	// WeekStart is "sunday" or "monday"
	WeekStart string `yaml:"week_start" mapstructure:"week_start"`
	// Timezone is an IANA name; empty uses the system zone
	Timezone string `yaml:"timezone,omitempty" mapstructure:"timezone"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// Source is the config file that was read, if any
	Source string `yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DB:        DefaultDBPath,
		BlobDir:   DefaultBlobDir,
		WeekStart: "sunday",
		LogLevel:  "info",
	}
}

// Normalize fills in missing values and replaces unknown ones with defaults
func (c *Config) Normalize() {
	if c.DB == "" {
		c.DB = DefaultDBPath
	}
	if c.BlobDir == "" {
		c.BlobDir = DefaultBlobDir
	}
	c.UserID = strings.TrimSpace(c.UserID)

	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	switch c.WeekStart {
	case "monday", "sunday":
		// ok
	default:
		c.WeekStart = "sunday"
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "error":
		// ok
	default:
		c.LogLevel = "info"
	}
}

// WeekStartDay returns the configured first day of the week
func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Location resolves Timezone, falling back to the system zone when unset
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DBPath returns the database location with ~ expanded
func (c *Config) DBPath() (string, error) {
	return homedir.Expand(c.DB)
}

// BlobPath returns the blob directory with ~ expanded
func (c *Config) BlobPath() (string, error) {
	return homedir.Expand(c.BlobDir)
}

// Load reads .daybook.yaml from $DAYBOOK_CONFIG_PATH, the working directory
// or $HOME, then applies DAYBOOK_* environment overrides. A missing file is
// not an error.
func Load() (*Config, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("db", defaults.DB)
	v.SetDefault("blob_dir", defaults.BlobDir)
	v.SetDefault("blob_base_url", "")
	v.SetDefault("user_id", "")
	v.SetDefault("user_email", "")
	v.SetDefault("week_start", defaults.WeekStart)
	v.SetDefault("timezone", "")
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.Normalize()

	return &cfg, nil
}

// DefaultPath returns ~/.daybook.yaml
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Save writes the configuration as YAML atomically via a temp file and
// rename, leaving the file readable only by its owner.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".daybook-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
