package config

import (
	"runtime"

	"github.com/abdul-hamid-achik/hookspec/packages/logging"
)

const (
	DefaultDriver      = "chrome"
	DefaultTimeout     = 30000 // 30 seconds
	DefaultConcurrency = 4
	DefaultSessionRate = 2
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Driver:       DefaultDriver,
		Platform:     HostPlatform(),
		SessionRate:  DefaultSessionRate,
		Timeout:      DefaultTimeout,
		Reporters:    []string{"console"},
		Parallel:     BoolPtr(false),
		Concurrency:  DefaultConcurrency,
		Bail:         BoolPtr(false),
		Verbose:      BoolPtr(false),
		NoColor:      BoolPtr(false),
		ResetRetries: BoolPtr(false),
		Log:          logging.DefaultConfig(),
	}
}

// HostPlatform returns the platform name of the machine running hookspec.
func HostPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "mac"
	case "windows":
		return "windows"
	}
	return runtime.GOOS
}
