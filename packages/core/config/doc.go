// Package config handles configuration loading and management for browsertest.
//
// It provides functionality for:
//   - Loading configuration from .browsertest.json or .browsertest.yml files
//   - Default configuration values
//   - Merging file configuration with command line overrides
package config
