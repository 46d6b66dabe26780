package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Browser:         "chromium",
		Headless:        nil,   // true
		Timeout:         60000, // 60 seconds
		ObserveInterval: 20,
		ScreenshotRoot:  ".",
		DoneMarker:      "test result: ",
		Manifest:        "",
		Port:            nil, // 8000
		FullPage:        nil, // false
		Verbose:         nil,
		NoColor:         nil,
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Browser == defaults.Browser &&
		c.GetHeadless() == defaults.GetHeadless() &&
		c.Timeout == defaults.Timeout &&
		c.ObserveInterval == defaults.ObserveInterval &&
		c.ScreenshotRoot == defaults.ScreenshotRoot &&
		c.DoneMarker == defaults.DoneMarker &&
		c.Manifest == defaults.Manifest &&
		c.GetPort() == defaults.GetPort() &&
		c.GetFullPage() == defaults.GetFullPage() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
