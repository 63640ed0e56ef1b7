package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"platter/internal/burn"
	"platter/internal/config"
	"platter/internal/deps"
	"platter/internal/library"
	"platter/internal/services"
	"platter/internal/textutil"
)

func newBurnCommand(ctx *commandContext) *cobra.Command {
	var deviceFlag string
	var speedFlag int
	var noEject bool
	var noWait bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "burn <playlist>",
		Short: "Burn a playlist to an audio CD",
		Long: `Burn transcodes every playlist track to CD-DA WAV in the staging
directory, levels the volume across the set with normalize, and writes the
disc with wodim in disc-at-once mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				if deviceFlag != "" {
					cfg.Burner.Device = deviceFlag
				}
				if cmd.Flags().Changed("speed") {
					cfg.Burner.Speed = speedFlag
				}
				if noEject {
					cfg.Burner.Eject = false
				}
				if noWait {
					cfg.Burner.WaitForDisc = false
				}

				pl, err := store.PlaylistByName(cmd.Context(), name)
				if err != nil {
					return err
				}
				tracks, err := store.PlaylistTracks(cmd.Context(), pl.ID)
				if err != nil {
					return err
				}
				plan, err := burn.BuildPlan(cfg, pl.Name, tracks)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if dryRun {
					printPlan(out, plan, cfg)
					return nil
				}

				if missing := deps.MissingRequired(deps.CheckBinaries(deps.Requirements(cfg))); len(missing) > 0 {
					return fmt.Errorf("missing required tools: %v (run `platter deps`)", missing)
				}

				burner, err := burn.NewBurner(cfg, logger)
				if err != nil {
					return err
				}
				err = burner.Run(cmd.Context(), plan, func(event burn.Event) {
					if line := event.Line(); line != "" {
						fmt.Fprintln(out, line)
					}
				})
				if err != nil && services.Retryable(err) {
					return fmt.Errorf("%w (transient failure; check the drive and retry)", err)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&deviceFlag, "device", "", "Burner device (overrides config)")
	cmd.Flags().IntVar(&speedFlag, "speed", 0, "Write speed (overrides config; 0 lets the drive pick)")
	cmd.Flags().BoolVar(&noEject, "no-eject", false, "Keep the tray closed after writing")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Fail immediately when no disc is present")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the plan without burning")

	return cmd
}

func printPlan(out io.Writer, plan *burn.Plan, cfg *config.Config) {
	rows := make([][]string, 0, len(plan.Tracks))
	for i, track := range plan.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			track.Title,
			track.Artist,
			textutil.FormatDuration(track.DurationSec),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Artist", "Length"},
		rows,
		1, 4,
	))
	fmt.Fprintf(out, "Playlist: %s\n", plan.PlaylistName)
	fmt.Fprintf(out, "Length:   %s of %s (%s free)\n",
		textutil.FormatDuration(plan.DurationSec),
		textutil.FormatDuration(plan.CapacitySec),
		textutil.FormatDuration(plan.Remaining()))
	fmt.Fprintf(out, "Device:   %s (speed %s, eject %s, wait for disc %s)\n",
		cfg.Burner.Device, speedLabel(cfg.Burner.Speed), yesNo(cfg.Burner.Eject), yesNo(cfg.Burner.WaitForDisc))
}

func speedLabel(speed int) string {
	if speed <= 0 {
		return "auto"
	}
	return strconv.Itoa(speed) + "x"
}
