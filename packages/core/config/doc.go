// Package config handles configuration loading and management for hookspec.
//
// It provides functionality for:
//   - Loading configuration from .hookspec.config.json or .hookspecrc files
//   - Default configuration values
//   - Merging CLI overrides over file values
package config
