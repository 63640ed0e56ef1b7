package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/config"
	"platter/internal/library"
	"platter/internal/textutil"
)

func newArtistsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List all artists in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				artists, err := store.ListArtists(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(artists) == 0 {
					fmt.Fprintln(out, "Library is empty; run `platter scan` first")
					return nil
				}
				for _, artist := range artists {
					fmt.Fprintln(out, artist)
				}
				return nil
			})
		},
	}
}

func newArtistCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "artist <name>",
		Short: "List an artist's tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				tracks, err := store.ArtistTracks(cmd.Context(), name)
				if err != nil {
					return err
				}
				if len(tracks) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No tracks for artist %q\n", name)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), trackTable(tracks))
				return nil
			})
		},
	}
}

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List all albums in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				albums, err := store.ListAlbums(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(albums) == 0 {
					fmt.Fprintln(out, "Library is empty; run `platter scan` first")
					return nil
				}
				rows := make([][]string, 0, len(albums))
				for _, album := range albums {
					rows = append(rows, []string{
						album.Album,
						album.Artist,
						strconv.Itoa(album.TrackCount),
						textutil.FormatDuration(album.DurationSec),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Album", "Artist", "Tracks", "Length"},
					rows,
					3, 4,
				))
				return nil
			})
		},
	}
}

func newAlbumCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "album <name>",
		Short: "List an album's tracks in order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				tracks, err := store.AlbumTracks(cmd.Context(), name)
				if err != nil {
					return err
				}
				if len(tracks) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No tracks on album %q\n", name)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), trackTable(tracks))
				return nil
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <terms>",
		Short: "Full-text search over titles, artists, and albums",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms := strings.Join(args, " ")
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				tracks, err := store.Search(cmd.Context(), terms)
				if err != nil {
					return err
				}
				if len(tracks) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No matches for %q\n", terms)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), trackTable(tracks))
				return nil
			})
		},
	}
}

func trackTable(tracks []*library.Track) string {
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		rows = append(rows, []string{
			strconv.FormatInt(track.ID, 10),
			track.Title,
			track.Artist,
			track.Album,
			strconv.FormatInt(track.TrackNo, 10),
			textutil.FormatDuration(track.DurationSec),
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Artist", "Album", "#", "Length"},
		rows,
		1, 5, 6,
	)
}
