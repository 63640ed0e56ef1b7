package main

import (
	"context"

	"github.com/spf13/cobra"

	"platter/internal/burn"
	"platter/internal/config"
	"platter/internal/library"
	"platter/internal/shell"
)

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse the library and build a disc interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				burnFn := func(runCtx context.Context, plan *burn.Plan, onEvent burn.EventFunc) error {
					burner, err := burn.NewBurner(cfg, logger)
					if err != nil {
						return err
					}
					return burner.Run(runCtx, plan, onEvent)
				}
				sh := shell.New(cfg, store, burnFn, logger, cmd.InOrStdin(), cmd.OutOrStdout())
				return sh.Run(cmd.Context())
			})
		},
	}
}
