package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/foodflow/internal/buildinfo"
	"github.com/dmitrijs2005/foodflow/internal/cli"
	"github.com/dmitrijs2005/foodflow/internal/config"
	"github.com/dmitrijs2005/foodflow/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg, logging.NewDefault())

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
