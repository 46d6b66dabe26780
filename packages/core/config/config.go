package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the browsertest configuration
type Config struct {
	Browser         string `json:"browser,omitempty" yaml:"browser,omitempty"`
	Headless        *bool  `json:"headless,omitempty" yaml:"headless,omitempty"`
	Timeout         int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`                 // milliseconds
	ObserveInterval int    `json:"observeInterval,omitempty" yaml:"observeInterval,omitempty"` // milliseconds
	ScreenshotRoot  string `json:"screenshotRoot,omitempty" yaml:"screenshotRoot,omitempty"`   // Directory screenshot paths are relative to
	DoneMarker      string `json:"doneMarker,omitempty" yaml:"doneMarker,omitempty"`           // Transcript text that ends a run
	Manifest        string `json:"manifest,omitempty" yaml:"manifest,omitempty"`               // Where to write the capture manifest
	Port            *int   `json:"port,omitempty" yaml:"port,omitempty"`                       // 0 picks a free port
	FullPage        *bool  `json:"fullPage,omitempty" yaml:"fullPage,omitempty"`
	Verbose         *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor         *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetHeadless returns the headless setting, defaulting to true
func (c *Config) GetHeadless() bool {
	return getBool(c.Headless, true)
}

// GetPort returns the port for serving a directory, defaulting to 8000
func (c *Config) GetPort() int {
	if c.Port == nil {
		return 8000
	}
	return *c.Port
}

// GetFullPage returns the full page screenshot setting, defaulting to false
func (c *Config) GetFullPage() bool {
	return getBool(c.FullPage, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".browsertest.json",
	"browsertest.json",
	".browsertest.yml",
	".browsertest.yaml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
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

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, err
	}

	return config, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Browser != "" {
		result.Browser = other.Browser
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.ObserveInterval > 0 {
		result.ObserveInterval = other.ObserveInterval
	}
	if other.ScreenshotRoot != "" {
		result.ScreenshotRoot = other.ScreenshotRoot
	}
	if other.DoneMarker != "" {
		result.DoneMarker = other.DoneMarker
	}
	if other.Manifest != "" {
		result.Manifest = other.Manifest
	}

	// Pointer fields - only override if explicitly set in other config
	if other.Port != nil {
		result.Port = other.Port
	}
	if other.Headless != nil {
		result.Headless = other.Headless
	}
	if other.FullPage != nil {
		result.FullPage = other.FullPage
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file, as YAML for .yml/.yaml paths
// and JSON otherwise
func (c *Config) SaveConfig(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
