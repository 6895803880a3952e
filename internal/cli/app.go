// Package cli implements the interactive FoodFlow terminal shell. It is
// a thin front end: all state and rules live in the store package, and
// every command here just prompts, calls one store operation and prints
// the result.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/foodflow/internal/config"
	"github.com/dmitrijs2005/foodflow/internal/logging"
	"github.com/dmitrijs2005/foodflow/internal/store"
)

type App struct {
	store  *store.Store
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	return &App{
		store:  store.New(cfg, log),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run loads the persisted data (bounded by the configured timeout) and
// enters the command loop.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Open(ctx); err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	fmt.Fprintln(a.out, "FoodFlow (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) isUser() bool     { return a.store.ActiveUser() != nil }
func (a *App) isBusiness() bool { return a.store.ActiveBusiness() != nil }

func (a *App) status() string {
	switch {
	case a.isUser():
		return a.store.ActiveUser().Name
	case a.isBusiness():
		return a.store.ActiveBusiness().Name
	default:
		return "guest"
	}
}
