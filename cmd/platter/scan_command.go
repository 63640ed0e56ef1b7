package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/config"
	"platter/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan the music directory into the library database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				if len(args) == 1 {
					dir, err := config.ExpandPath(args[0])
					if err != nil {
						return fmt.Errorf("resolve scan dir: %w", err)
					}
					cfg.Library.MusicDir = dir
				}
				scanner := library.NewScanner(cfg, store, logger)
				result, err := scanner.Scan(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scanned %d files, stored %d tracks\n", result.Scanned, result.Stored)
				for _, scanErr := range result.Errors {
					fmt.Fprintf(out, "  skipped %s: %v\n", scanErr.Path, scanErr.Err)
				}
				return nil
			})
		},
	}
}
