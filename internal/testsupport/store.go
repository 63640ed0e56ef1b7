package testsupport

import (
	"context"
	"testing"

	"platter/internal/config"
	"platter/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedTrack inserts a single track with the given metadata and returns it.
func SeedTrack(t testing.TB, store *library.Store, input library.TrackInput) *library.Track {
	t.Helper()

	if _, err := store.ReplaceTracks(context.Background(), []library.TrackInput{input}); err != nil {
		t.Fatalf("store.ReplaceTracks: %v", err)
	}
	tracks, err := store.Search(context.Background(), input.Title)
	if err != nil {
		t.Fatalf("store.Search: %v", err)
	}
	for _, track := range tracks {
		if track.Path == input.Path {
			return track
		}
	}
	t.Fatalf("seeded track %q not found", input.Path)
	return nil
}
