// Package shell implements the interactive library browser. It operates on
// a persistent working playlist named "queue": browse artists and albums,
// search, stack tracks against the disc budget, and kick off a burn without
// leaving the prompt.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"platter/internal/burn"
	"platter/internal/config"
	"platter/internal/library"
	"platter/internal/logging"
	"platter/internal/playlist"
	"platter/internal/textutil"
)

// WorkingPlaylist is the playlist name the shell stacks tracks onto.
const WorkingPlaylist = "queue"

// BurnFunc runs the burn pipeline for a validated plan.
type BurnFunc func(ctx context.Context, plan *burn.Plan, onEvent burn.EventFunc) error

// Shell reads commands from in and writes results to out.
type Shell struct {
	cfg    *config.Config
	store  *library.Store
	burner BurnFunc
	logger *slog.Logger

	in  io.Reader
	out io.Writer
}

// New constructs a shell over the given store. burner may be nil, in which
// case the burn command reports that burning is unavailable.
func New(cfg *config.Config, store *library.Store, burner BurnFunc, logger *slog.Logger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		cfg:    cfg,
		store:  store,
		burner: burner,
		logger: logging.NewComponentLogger(logger, "shell"),
		in:     in,
		out:    out,
	}
}

// Run processes commands until EOF, "quit", or context cancellation.
func (s *Shell) Run(ctx context.Context) error {
	if _, err := s.store.EnsurePlaylist(ctx, WorkingPlaylist); err != nil {
		return fmt.Errorf("prepare working playlist: %w", err)
	}

	fmt.Fprintln(s.out, `platter shell - type "help" for commands`)
	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, "platter> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		quit, err := s.dispatch(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, line string) (quit bool, err error) {
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case "quit", "exit":
		return true, nil
	case "help":
		s.printHelp()
		return false, nil
	case "artists":
		return false, s.cmdArtists(ctx)
	case "artist":
		return false, s.cmdArtist(ctx, rest)
	case "albums":
		return false, s.cmdAlbums(ctx)
	case "album":
		return false, s.cmdAlbum(ctx, rest)
	case "search":
		return false, s.cmdSearch(ctx, rest)
	case "playlist", "pl":
		return false, s.cmdPlaylist(ctx, rest)
	default:
		return false, fmt.Errorf("unknown command %q; type \"help\"", command)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `commands:
  artists               list all artists
  artist <name>         list an artist's tracks
  albums                list all albums
  album <name>          list an album's tracks
  search <terms>        full-text search over titles, artists, albums
  playlist              show the working playlist and disc budget
  playlist add <id>     add a track by id (must fit on the disc)
  playlist remove <n>   remove entry n (as shown by playlist)
  playlist clear        empty the working playlist
  playlist limit        show the disc budget
  playlist burn         burn the working playlist to disc
  quit                  leave the shell
`)
}

func (s *Shell) cmdArtists(ctx context.Context) error {
	artists, err := s.store.ListArtists(ctx)
	if err != nil {
		return err
	}
	if len(artists) == 0 {
		fmt.Fprintln(s.out, "library is empty; run `platter scan` first")
		return nil
	}
	for _, artist := range artists {
		fmt.Fprintln(s.out, artist)
	}
	return nil
}

func (s *Shell) cmdArtist(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("usage: artist <name>")
	}
	tracks, err := s.store.ArtistTracks(ctx, name)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		fmt.Fprintf(s.out, "no tracks for artist %q\n", name)
		return nil
	}
	fmt.Fprintln(s.out, renderTrackTable(tracks))
	return nil
}

func (s *Shell) cmdAlbums(ctx context.Context) error {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return err
	}
	if len(albums) == 0 {
		fmt.Fprintln(s.out, "library is empty; run `platter scan` first")
		return nil
	}
	fmt.Fprintln(s.out, renderAlbumTable(albums))
	return nil
}

func (s *Shell) cmdAlbum(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("usage: album <name>")
	}
	tracks, err := s.store.AlbumTracks(ctx, name)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		fmt.Fprintf(s.out, "no tracks on album %q\n", name)
		return nil
	}
	fmt.Fprintln(s.out, renderTrackTable(tracks))
	return nil
}

func (s *Shell) cmdSearch(ctx context.Context, terms string) error {
	if terms == "" {
		return errors.New("usage: search <terms>")
	}
	tracks, err := s.store.Search(ctx, terms)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		fmt.Fprintf(s.out, "no matches for %q\n", terms)
		return nil
	}
	fmt.Fprintln(s.out, renderTrackTable(tracks))
	return nil
}

func (s *Shell) cmdPlaylist(ctx context.Context, rest string) error {
	sub, arg, _ := strings.Cut(rest, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(strings.TrimSpace(sub)) {
	case "", "list", "show":
		return s.playlistShow(ctx)
	case "add":
		return s.playlistAdd(ctx, arg)
	case "remove", "rm":
		return s.playlistRemove(ctx, arg)
	case "clear":
		return s.playlistClear(ctx)
	case "limit":
		return s.playlistLimit(ctx)
	case "burn":
		return s.playlistBurn(ctx)
	default:
		return fmt.Errorf("unknown playlist subcommand %q", sub)
	}
}

func (s *Shell) workingTracks(ctx context.Context) (*library.Playlist, []*library.Track, error) {
	pl, err := s.store.EnsurePlaylist(ctx, WorkingPlaylist)
	if err != nil {
		return nil, nil, err
	}
	tracks, err := s.store.PlaylistTracks(ctx, pl.ID)
	if err != nil {
		return nil, nil, err
	}
	return pl, tracks, nil
}

func (s *Shell) playlistShow(ctx context.Context) error {
	_, tracks, err := s.workingTracks(ctx)
	if err != nil {
		return err
	}
	budget := playlist.BudgetFor(s.cfg.Burner.CapacitySeconds, tracks)
	if len(tracks) == 0 {
		fmt.Fprintf(s.out, "playlist is empty; %s\n", budget.Describe())
		return nil
	}
	fmt.Fprintln(s.out, renderPlaylistTable(tracks))
	fmt.Fprintln(s.out, budget.Describe())
	return nil
}

func (s *Shell) playlistAdd(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return errors.New("usage: playlist add <track id>")
	}
	track, err := s.store.TrackByID(ctx, id)
	if err != nil {
		return err
	}

	pl, tracks, err := s.workingTracks(ctx)
	if err != nil {
		return err
	}
	budget := playlist.BudgetFor(s.cfg.Burner.CapacitySeconds, tracks)
	if err := budget.Add(track); err != nil {
		return err
	}

	if err := s.store.AppendPlaylistTrack(ctx, pl.ID, track.ID); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "added %s (%s); %s\n",
		track.Title, textutil.FormatDuration(track.DurationSec), budget.Describe())
	return nil
}

func (s *Shell) playlistRemove(ctx context.Context, arg string) error {
	position, err := strconv.Atoi(arg)
	if err != nil || position < 1 {
		return errors.New("usage: playlist remove <entry number>")
	}
	pl, err := s.store.EnsurePlaylist(ctx, WorkingPlaylist)
	if err != nil {
		return err
	}
	removed, err := s.store.RemovePlaylistTrack(ctx, pl.ID, position-1)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no entry %d in the playlist", position)
	}
	fmt.Fprintf(s.out, "removed entry %d\n", position)
	return nil
}

func (s *Shell) playlistClear(ctx context.Context) error {
	pl, err := s.store.EnsurePlaylist(ctx, WorkingPlaylist)
	if err != nil {
		return err
	}
	if err := s.store.ClearPlaylist(ctx, pl.ID); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "playlist cleared")
	return nil
}

func (s *Shell) playlistLimit(ctx context.Context) error {
	_, tracks, err := s.workingTracks(ctx)
	if err != nil {
		return err
	}
	budget := playlist.BudgetFor(s.cfg.Burner.CapacitySeconds, tracks)
	fmt.Fprintln(s.out, budget.Describe())
	return nil
}

func (s *Shell) playlistBurn(ctx context.Context) error {
	if s.burner == nil {
		return errors.New("burning is not available in this session")
	}
	_, tracks, err := s.workingTracks(ctx)
	if err != nil {
		return err
	}
	plan, err := burn.BuildPlan(s.cfg, WorkingPlaylist, tracks)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "burning %d tracks (%s) to %s\n",
		len(plan.Tracks), textutil.FormatDuration(plan.DurationSec), s.cfg.Burner.Device)
	if err := s.burner(ctx, plan, s.printBurnEvent); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "burn complete")
	return nil
}

func (s *Shell) printBurnEvent(event burn.Event) {
	if line := event.Line(); line != "" {
		fmt.Fprintf(s.out, "  %s\n", line)
	}
}
