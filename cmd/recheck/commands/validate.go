package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/recheck/internal/app"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [tickets...]",
		Short: "Validate tickets, re-evaluating only what changed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			force, _ := cmd.Flags().GetBool("force")
			if len(args) == 0 && !all {
				_ = cmd.Help()
				return nil
			}

			return c.app.Validate(cmd.Context(), args, app.ValidateOptions{
				All:        all,
				Force:      force,
				OutputMode: c.output,
			})
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Validate every ticket in the ticket directory")
	cmd.Flags().BoolP("force", "f", false, "Re-evaluate every field even when nothing changed")
	return cmd
}
