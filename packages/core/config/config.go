package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/hookspec/packages/logging"
)

// Config represents the hookspec configuration
type Config struct {
	// Driver is the browser driver name: chrome, firefox, safari, ie11, ...
	Driver   string `json:"driver,omitempty"`
	Platform string `json:"platform,omitempty"`
	// RemoteURL is the WebDriver endpoint. Empty runs local sessions.
	RemoteURL   string  `json:"remoteUrl,omitempty"`
	SessionRate float64 `json:"sessionRate,omitempty"` // remote sessions created per second
	Timeout     int     `json:"timeout,omitempty"`     // milliseconds
	Environment string  `json:"environment,omitempty"`

	Reporters   []string `json:"reporters,omitempty"`
	OutputDir   string   `json:"outputDir,omitempty"`
	Parallel    *bool    `json:"parallel,omitempty"`
	Concurrency int      `json:"concurrency,omitempty"`
	Bail        *bool    `json:"bail,omitempty"`
	Verbose     *bool    `json:"verbose,omitempty"`
	NoColor     *bool    `json:"noColor,omitempty"`
	// ResetRetries zeroes the retry counter before each test.
	ResetRetries *bool           `json:"resetRetries,omitempty"`
	Log          *logging.Config `json:"log,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetParallel returns the parallel setting, defaulting to false
func (c *Config) GetParallel() bool {
	return getBool(c.Parallel, false)
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetResetRetries returns the reset retries setting, defaulting to false
func (c *Config) GetResetRetries() bool {
	return getBool(c.ResetRetries, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".hookspec.config.json",
	"hookspec.config.json",
	".hookspecrc",
	".hookspecrc.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.SessionRate < 0 {
		return fmt.Errorf("sessionRate must not be negative, got %v", c.SessionRate)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.Timeout)
	}
	for _, r := range c.Reporters {
		if !isReporter(r) {
			return fmt.Errorf("unknown reporter %q", r)
		}
	}
	return nil
}

func isReporter(name string) bool {
	switch name {
	case "console", "json", "junit", "tap", "html":
		return true
	}
	return false
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.Driver != "" {
		result.Driver = other.Driver
	}
	if other.Platform != "" {
		result.Platform = other.Platform
	}
	if other.RemoteURL != "" {
		result.RemoteURL = other.RemoteURL
	}
	if other.SessionRate > 0 {
		result.SessionRate = other.SessionRate
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.Environment != "" {
		result.Environment = other.Environment
	}
	if other.OutputDir != "" {
		result.OutputDir = other.OutputDir
	}
	if other.Concurrency > 0 {
		result.Concurrency = other.Concurrency
	}
	if len(other.Reporters) > 0 {
		result.Reporters = other.Reporters
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Parallel != nil {
		result.Parallel = other.Parallel
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.ResetRetries != nil {
		result.ResetRetries = other.ResetRetries
	}

	if other.Log != nil {
		merged := *other.Log
		if result.Log != nil {
			merged = mergeLog(*result.Log, *other.Log)
		}
		result.Log = &merged
	}

	return &result
}

func mergeLog(base, other logging.Config) logging.Config {
	if other.Level != "" {
		base.Level = other.Level
	}
	if other.Format != "" {
		base.Format = other.Format
	}
	if other.Output != "" {
		base.Output = other.Output
	}
	if other.FilePath != "" {
		base.FilePath = other.FilePath
	}
	if other.MaxSize > 0 {
		base.MaxSize = other.MaxSize
	}
	if other.MaxBackups > 0 {
		base.MaxBackups = other.MaxBackups
	}
	if other.MaxAge > 0 {
		base.MaxAge = other.MaxAge
	}
	if other.Compress {
		base.Compress = true
	}
	return base
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
