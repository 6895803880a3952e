package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"data_file":        "/tmp/foodflow.json",
		"load_timeout":     "2s",
		"retention_window": "48h",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/tmp/foodflow.json", cfg.DataFile)
		assert.Equal(t, 2*time.Second, cfg.LoadTimeout)
		assert.Equal(t, 48*time.Hour, cfg.RetentionWindow)
	})

	t.Run("no config flag leaves values unchanged", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "data.json", cfg.DataFile)
		assert.Equal(t, 1*time.Second, cfg.LoadTimeout)
	})

	t.Run("partial file keeps defaults for missing keys", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"data_file": "other.json"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "other.json", cfg.DataFile)
		assert.Equal(t, 1*time.Second, cfg.LoadTimeout)
		assert.Equal(t, 24*time.Hour, cfg.RetentionWindow)
	})
}
