package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/flagx"
	"github.com/dmitrijs2005/foodflow/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file.
// Duration fields use timex.Duration so both "1s" strings and integer
// nanoseconds parse.
type JsonConfig struct {
	DataFile        string         `json:"data_file"`
	LoadTimeout     timex.Duration `json:"load_timeout"`
	RetentionWindow timex.Duration `json:"retention_window"`
}

// parseJson overlays values from the JSON file named by -c/-config, if
// any, onto the given Config. An unreadable or invalid file panics:
// a config file that was explicitly requested must not be half-applied.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DataFile != "" {
		config.DataFile = c.DataFile
	}
	if c.LoadTimeout.Duration != 0 {
		config.LoadTimeout = time.Duration(c.LoadTimeout.Duration)
	}
	if c.RetentionWindow.Duration != 0 {
		config.RetentionWindow = time.Duration(c.RetentionWindow.Duration)
	}
}
