package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/disc"
)

func newDriveCommand(ctx *commandContext) *cobra.Command {
	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "Optical drive utilities",
	}

	driveCmd.AddCommand(newDriveStatusCommand(ctx))
	driveCmd.AddCommand(newDriveEjectCommand(ctx))
	driveCmd.AddCommand(newDriveWatchCommand(ctx))

	return driveCmd
}

func newDriveStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the burner drive status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			status, err := disc.CheckDriveStatus(cfg.Burner.Device)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			kind := checkInfo
			switch status {
			case disc.DriveStatusDiscOK:
				kind = checkOK
			case disc.DriveStatusNoDisc, disc.DriveStatusTrayOpen:
				kind = checkWarn
			}
			fmt.Fprintln(out, renderCheckLine(cfg.Burner.Device, kind, status.String(), shouldColorize(out)))
			return nil
		},
	}
}

func newDriveWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report disc insertions until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			watcher := disc.NewWatcher(cfg.Burner.Device, logger, func(_ context.Context, device string) {
				fmt.Fprintf(out, "media inserted in %s\n", device)
			})
			if watcher == nil {
				return fmt.Errorf("no burner device configured")
			}
			if err := watcher.Start(cmd.Context()); err != nil {
				return err
			}
			defer watcher.Stop()
			if !watcher.Running() {
				return fmt.Errorf("netlink socket unavailable; cannot watch for insertions")
			}

			fmt.Fprintf(out, "Watching %s for disc insertions (Ctrl-C to stop)\n", cfg.Burner.Device)
			<-cmd.Context().Done()
			return nil
		},
	}
}

func newDriveEjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "eject",
		Short: "Open the burner drive tray",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ejector := disc.NewEjector(cfg.EjectBinary())
			if err := ejector.Eject(cmd.Context(), cfg.Burner.Device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ejected %s\n", cfg.Burner.Device)
			return nil
		},
	}
}
