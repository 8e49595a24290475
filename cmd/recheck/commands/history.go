package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/recheck/internal/app"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored validation results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.History(cmd.Context(), app.HistoryOptions{OutputMode: c.output})
		},
	}
}

func (c *CLI) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored validation results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clear(cmd.Context())
		},
	}
}
