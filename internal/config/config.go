// Package config handles configuration for the FoodFlow application,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DataFile: path of the persisted JSON document.
//   - LoadTimeout: how long startup waits for the background load
//     before proceeding with an empty document.
//   - RetentionWindow: how long past expiry an item survives before the
//     sweeper drops it on save.
type Config struct {
	DataFile        string
	LoadTimeout     time.Duration
	RetentionWindow time.Duration
}

// LoadDefaults populates Config with the standard settings.
func (c *Config) LoadDefaults() {
	c.DataFile = "data.json"
	c.LoadTimeout = 1 * time.Second
	c.RetentionWindow = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying
// values from an optional JSON file and finally from command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
