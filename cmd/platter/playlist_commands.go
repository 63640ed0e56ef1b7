package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/config"
	"platter/internal/library"
	"platter/internal/playlist"
	"platter/internal/textutil"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	playlistCmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"pl"},
		Short:   "Manage playlists",
	}

	playlistCmd.AddCommand(newPlaylistNewCommand(ctx))
	playlistCmd.AddCommand(newPlaylistListCommand(ctx))
	playlistCmd.AddCommand(newPlaylistShowCommand(ctx))
	playlistCmd.AddCommand(newPlaylistAddCommand(ctx))
	playlistCmd.AddCommand(newPlaylistRemoveCommand(ctx))
	playlistCmd.AddCommand(newPlaylistClearCommand(ctx))
	playlistCmd.AddCommand(newPlaylistRenameCommand(ctx))
	playlistCmd.AddCommand(newPlaylistDeleteCommand(ctx))

	return playlistCmd
}

func newPlaylistNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty playlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				pl, err := store.CreatePlaylist(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created playlist %q\n", pl.Name)
				return nil
			})
		},
	}
}

func newPlaylistListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List playlists with track counts and durations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				summaries, err := store.ListPlaylists(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No playlists")
					return nil
				}
				rows := make([][]string, 0, len(summaries))
				for _, summary := range summaries {
					rows = append(rows, []string{
						summary.Name,
						strconv.Itoa(summary.TrackCount),
						textutil.FormatDuration(summary.DurationSec),
						summary.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Name", "Tracks", "Length", "Updated"},
					rows,
					2, 3,
				))
				return nil
			})
		},
	}
}

func newPlaylistShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a playlist's tracks and disc budget",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				pl, err := store.PlaylistByName(cmd.Context(), name)
				if err != nil {
					return err
				}
				tracks, err := store.PlaylistTracks(cmd.Context(), pl.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				budget := playlist.BudgetFor(cfg.Burner.CapacitySeconds, tracks)
				if len(tracks) == 0 {
					fmt.Fprintf(out, "Playlist %q is empty; %s\n", pl.Name, budget.Describe())
					return nil
				}

				rows := make([][]string, 0, len(tracks))
				for i, track := range tracks {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						strconv.FormatInt(track.ID, 10),
						track.Title,
						track.Artist,
						textutil.FormatDuration(track.DurationSec),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "ID", "Title", "Artist", "Length"},
					rows,
					1, 2, 5,
				))
				fmt.Fprintln(out, budget.Describe())
				return nil
			})
		},
	}
}

func newPlaylistAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <track id>...",
		Short: "Append tracks to a playlist, enforcing disc capacity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				pl, err := store.EnsurePlaylist(cmd.Context(), name)
				if err != nil {
					return err
				}
				existing, err := store.PlaylistTracks(cmd.Context(), pl.ID)
				if err != nil {
					return err
				}
				budget := playlist.BudgetFor(cfg.Burner.CapacitySeconds, existing)

				out := cmd.OutOrStdout()
				for _, arg := range args[1:] {
					id, err := strconv.ParseInt(arg, 10, 64)
					if err != nil {
						return fmt.Errorf("invalid track id %q", arg)
					}
					track, err := store.TrackByID(cmd.Context(), id)
					if err != nil {
						return err
					}
					if err := budget.Add(track); err != nil {
						return err
					}
					if err := store.AppendPlaylistTrack(cmd.Context(), pl.ID, track.ID); err != nil {
						return err
					}
					fmt.Fprintf(out, "Added %s (%s)\n", track.Title, textutil.FormatDuration(track.DurationSec))
				}
				fmt.Fprintln(out, budget.Describe())
				return nil
			})
		},
	}
}

func newPlaylistRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <entry number>",
		Short: "Remove a playlist entry by its position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			position, err := strconv.Atoi(args[1])
			if err != nil || position < 1 {
				return fmt.Errorf("invalid entry number %q", args[1])
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				pl, err := store.PlaylistByName(cmd.Context(), name)
				if err != nil {
					return err
				}
				removed, err := store.RemovePlaylistTrack(cmd.Context(), pl.ID, position-1)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no entry %d in playlist %q", position, name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d from %q\n", position, name)
				return nil
			})
		},
	}
}

func newPlaylistClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <name>",
		Short: "Remove all tracks from a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				pl, err := store.PlaylistByName(cmd.Context(), name)
				if err != nil {
					return err
				}
				if err := store.ClearPlaylist(cmd.Context(), pl.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared playlist %q\n", name)
				return nil
			})
		},
	}
}

func newPlaylistRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				if err := store.RenamePlaylist(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed playlist %q to %q\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newPlaylistDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				deleted, err := store.DeletePlaylist(cmd.Context(), name)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("playlist %q not found", name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted playlist %q\n", name)
				return nil
			})
		},
	}
}
