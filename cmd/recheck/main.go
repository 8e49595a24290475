// Package main is the entry point for the recheck ticket validator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/recheck/cmd/recheck/commands"
	"go.trai.ch/recheck/internal/app"
	"go.trai.ch/recheck/internal/core/domain"
	_ "go.trai.ch/recheck/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() { closeComponents(c) }, err
	}))
}

// closeComponents releases resources held by the components, logging any failure.
func closeComponents(c *app.Components) {
	if c == nil || c.App == nil {
		return
	}
	if err := c.App.Close(); err != nil {
		c.Logger.Error(err)
	}
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger may not exist yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App, components.Logger)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Per-ticket failures were already logged as they happened.
		if errors.Is(err, domain.ErrValidationFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
