package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the external tools are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, status := range statuses {
				kind := checkOK
				message := status.Command
				if !status.Available {
					kind = checkError
					message = status.Detail
					if status.Optional {
						kind = checkWarn
						message += " (optional)"
					}
				}
				fmt.Fprintln(out, renderCheckLine(status.Name, kind, message, colorize))
			}

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %v", missing)
			}
			return nil
		},
	}
}
