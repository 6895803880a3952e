package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("flags override defaults", func(t *testing.T) {
		os.Args = []string{"testbin", "-f", "custom.json", "-t", "500", "-r", "12"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "custom.json", cfg.DataFile)
		assert.Equal(t, 500*time.Millisecond, cfg.LoadTimeout)
		assert.Equal(t, 12*time.Hour, cfg.RetentionWindow)
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-zzz", "1", "-f", "x.json"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "x.json", cfg.DataFile)
	})
}
