package shell_test

import (
	"context"
	"strings"
	"testing"

	"platter/internal/burn"
	"platter/internal/library"
	"platter/internal/logging"
	"platter/internal/shell"
	"platter/internal/testsupport"
)

func seedShellLibrary(t *testing.T, store *library.Store) {
	t.Helper()
	inputs := []library.TrackInput{
		{Path: "/music/a/01.flac", Title: "Opener", Artist: "Galaxy Arms", Album: "Long Play", TrackNo: 1, DurationSec: 215},
		{Path: "/music/a/02.flac", Title: "Closer", Artist: "Galaxy Arms", Album: "Long Play", TrackNo: 2, DurationSec: 187},
		{Path: "/music/b/01.mp3", Title: "Drift", Artist: "Novelty", Album: "Short EP", TrackNo: 1, DurationSec: 302},
	}
	if _, err := store.ReplaceTracks(context.Background(), inputs); err != nil {
		t.Fatalf("ReplaceTracks: %v", err)
	}
}

func runShell(t *testing.T, script string, burner shell.BurnFunc, capacity int64) (string, *library.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithCapacity(capacity))
	store := testsupport.MustOpenStore(t, cfg)
	seedShellLibrary(t, store)

	var out strings.Builder
	sh := shell.New(cfg, store, burner, logging.NewNop(), strings.NewReader(script), &out)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), store
}

func TestShellBrowsing(t *testing.T) {
	out, _ := runShell(t, "artists\nalbums\nartist Galaxy Arms\nsearch drift\nquit\n", nil, 4799)

	if !strings.Contains(out, "Galaxy Arms") || !strings.Contains(out, "Novelty") {
		t.Fatalf("artists missing from output:\n%s", out)
	}
	if !strings.Contains(out, "Long Play") || !strings.Contains(out, "Short EP") {
		t.Fatalf("albums missing from output:\n%s", out)
	}
	if !strings.Contains(out, "Drift") {
		t.Fatalf("search result missing:\n%s", out)
	}
}

func TestShellPlaylistAddRespectsBudget(t *testing.T) {
	// Capacity fits the first two tracks (215+187=402) but not the third.
	out, store := runShell(t, "playlist add 1\nplaylist add 2\nplaylist add 3\nplaylist\nquit\n", nil, 450)

	if !strings.Contains(out, "added Opener") || !strings.Contains(out, "added Closer") {
		t.Fatalf("adds missing:\n%s", out)
	}
	if !strings.Contains(out, "error:") {
		t.Fatalf("over-budget add not rejected:\n%s", out)
	}

	pl, err := store.PlaylistByName(context.Background(), shell.WorkingPlaylist)
	if err != nil {
		t.Fatalf("PlaylistByName: %v", err)
	}
	tracks, err := store.PlaylistTracks(context.Background(), pl.ID)
	if err != nil {
		t.Fatalf("PlaylistTracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 persisted tracks, got %d", len(tracks))
	}
}

func TestShellPlaylistRemoveAndClear(t *testing.T) {
	script := "playlist add 1\nplaylist add 3\nplaylist remove 1\nplaylist\nplaylist clear\nplaylist\nquit\n"
	out, store := runShell(t, script, nil, 4799)

	if !strings.Contains(out, "removed entry 1") {
		t.Fatalf("remove missing:\n%s", out)
	}
	if !strings.Contains(out, "playlist cleared") || !strings.Contains(out, "playlist is empty") {
		t.Fatalf("clear missing:\n%s", out)
	}

	pl, _ := store.PlaylistByName(context.Background(), shell.WorkingPlaylist)
	tracks, _ := store.PlaylistTracks(context.Background(), pl.ID)
	if len(tracks) != 0 {
		t.Fatalf("playlist not cleared: %d tracks", len(tracks))
	}
}

func TestShellBurnRunsPipeline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Seed a track whose source file actually exists so the plan validates.
	path := testsupport.TrackFile(t, cfg.Library.MusicDir, "one.flac")
	if _, err := store.ReplaceTracks(context.Background(), []library.TrackInput{
		{Path: path, Title: "One", Artist: "A", Album: "B", DurationSec: 60},
	}); err != nil {
		t.Fatalf("ReplaceTracks: %v", err)
	}

	var burned *burn.Plan
	burner := func(ctx context.Context, plan *burn.Plan, onEvent burn.EventFunc) error {
		burned = plan
		if onEvent != nil {
			onEvent(burn.Event{Stage: burn.StageTranscode, TrackTitle: "One", Percent: 42})
			onEvent(burn.Event{Stage: burn.StageDone, Message: "wrote 1 tracks"})
		}
		return nil
	}

	var out strings.Builder
	sh := shell.New(cfg, store, burner, logging.NewNop(),
		strings.NewReader("playlist add 1\nplaylist burn\nquit\n"), &out)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if burned == nil || len(burned.Tracks) != 1 || burned.Tracks[0].Title != "One" {
		t.Fatalf("burn not invoked with plan: %+v", burned)
	}
	if !strings.Contains(out.String(), "[transcode] One 42%") {
		t.Fatalf("progress line missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "burn complete") {
		t.Fatalf("burn completion missing:\n%s", out.String())
	}
}

func TestShellPlaylistLimit(t *testing.T) {
	out, _ := runShell(t, "playlist add 1\nplaylist limit\nquit\n", nil, 4799)
	if !strings.Contains(out, "3:35 / 79:59") {
		t.Fatalf("budget missing from limit output:\n%s", out)
	}
}

func TestShellUnknownCommand(t *testing.T) {
	out, _ := runShell(t, "frobnicate\nquit\n", nil, 4799)
	if !strings.Contains(out, "unknown command") {
		t.Fatalf("unknown command not reported:\n%s", out)
	}
}

func TestShellBurnUnavailable(t *testing.T) {
	out, _ := runShell(t, "playlist burn\nquit\n", nil, 4799)
	if !strings.Contains(out, "not available") && !strings.Contains(out, "error:") {
		t.Fatalf("missing burner not reported:\n%s", out)
	}
}
