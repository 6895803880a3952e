package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/foodflow/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-f string   data file path (default "data.json")
//	-t int      startup load timeout, milliseconds
//	-r int      expired-item retention window, hours
//
// Args are filtered with flagx.FilterArgs first so the -c/-config flag
// handled by parseJson does not collide here.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DataFile, "f", config.DataFile, "data file path")
	loadTimeout := fs.Int("t", int(config.LoadTimeout.Milliseconds()), "load timeout (in milliseconds)")
	retention := fs.Int("r", int(config.RetentionWindow.Hours()), "retention window (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LoadTimeout = time.Duration(*loadTimeout) * time.Millisecond
	config.RetentionWindow = time.Duration(*retention) * time.Hour
}
