// Package commands implements the CLI commands for recheck.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/recheck/internal/app"
	"go.trai.ch/recheck/internal/build"
	"go.trai.ch/recheck/internal/core/ports"
)

// CLI represents the command line interface for recheck.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command

	output   string
	jsonLogs bool
}

// Application represents the application logic interface.
type Application interface {
	Validate(ctx context.Context, keys []string, opts app.ValidateOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	History(ctx context.Context, opts app.HistoryOptions) error
	Clear(ctx context.Context) error
}

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "recheck",
		Short:         "Incremental quality validation for tickets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", "auto", "Output mode: auto, color, or plain")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json-logs", false, "Write log messages as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if s, ok := c.logger.(jsonSwitcher); ok && c.jsonLogs {
			s.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newClearCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
