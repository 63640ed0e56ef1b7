package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"platter/internal/config"
	"platter/internal/library"
)

func seedCommandLibrary(t *testing.T, configPath string) {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	inputs := []library.TrackInput{
		{Path: "/music/a/01.flac", Title: "Opener", Artist: "Galaxy Arms", Album: "Long Play", TrackNo: 1, DurationSec: 215},
		{Path: "/music/a/02.flac", Title: "Closer", Artist: "Galaxy Arms", Album: "Long Play", TrackNo: 2, DurationSec: 187},
	}
	if _, err := store.ReplaceTracks(context.Background(), inputs); err != nil {
		t.Fatalf("seed tracks: %v", err)
	}
}

func seedTrackAt(t *testing.T, configPath, path, title string, durationSec int) {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	inputs := []library.TrackInput{
		{Path: path, Title: title, Artist: "Galaxy Arms", Album: "Long Play", TrackNo: 1, DurationSec: int64(durationSec)},
	}
	if _, err := store.ReplaceTracks(context.Background(), inputs); err != nil {
		t.Fatalf("seed track: %v", err)
	}
}

func TestPlaylistLifecycleCommands(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	seedCommandLibrary(t, configPath)

	out, err := runCommand(t, "--config", configPath, "playlist", "new", "mix")
	if err != nil {
		t.Fatalf("playlist new: %v", err)
	}
	if !strings.Contains(out, `Created playlist "mix"`) {
		t.Fatalf("create not reported:\n%s", out)
	}

	out, err = runCommand(t, "--config", configPath, "playlist", "add", "mix", "1", "2")
	if err != nil {
		t.Fatalf("playlist add: %v", err)
	}
	if !strings.Contains(out, "Added Opener") || !strings.Contains(out, "Added Closer") {
		t.Fatalf("adds not reported:\n%s", out)
	}

	out, err = runCommand(t, "--config", configPath, "playlist", "show", "mix")
	if err != nil {
		t.Fatalf("playlist show: %v", err)
	}
	if !strings.Contains(out, "Opener") || !strings.Contains(out, "6:42 / 79:59") {
		t.Fatalf("show output unexpected:\n%s", out)
	}

	out, err = runCommand(t, "--config", configPath, "playlist", "list")
	if err != nil {
		t.Fatalf("playlist list: %v", err)
	}
	if !strings.Contains(out, "mix") {
		t.Fatalf("list missing playlist:\n%s", out)
	}

	out, err = runCommand(t, "--config", configPath, "playlist", "remove", "mix", "1")
	if err != nil {
		t.Fatalf("playlist remove: %v", err)
	}
	if !strings.Contains(out, "Removed entry 1") {
		t.Fatalf("remove not reported:\n%s", out)
	}

	if _, err := runCommand(t, "--config", configPath, "playlist", "remove", "mix", "9"); err == nil {
		t.Fatal("expected error for out-of-range entry")
	}

	out, err = runCommand(t, "--config", configPath, "playlist", "rename", "mix", "roadtrip")
	if err != nil {
		t.Fatalf("playlist rename: %v", err)
	}
	if !strings.Contains(out, `Renamed playlist "mix" to "roadtrip"`) {
		t.Fatalf("rename not reported:\n%s", out)
	}
	if _, err = runCommand(t, "--config", configPath, "playlist", "rename", "roadtrip", "mix"); err != nil {
		t.Fatalf("playlist rename back: %v", err)
	}

	out, err = runCommand(t, "--config", configPath, "playlist", "delete", "mix")
	if err != nil {
		t.Fatalf("playlist delete: %v", err)
	}
	if !strings.Contains(out, `Deleted playlist "mix"`) {
		t.Fatalf("delete not reported:\n%s", out)
	}

	if _, err := runCommand(t, "--config", configPath, "playlist", "show", "mix"); err == nil {
		t.Fatal("expected error for deleted playlist")
	}
}

func TestPlaylistAddEnforcesCapacity(t *testing.T) {
	configPath, baseDir := writeTestConfig(t)
	_ = baseDir
	seedCommandLibrary(t, configPath)

	// Shrink the capacity below the first track's length.
	if _, err := runCommand(t, "--config", configPath, "playlist", "new", "tiny"); err != nil {
		t.Fatalf("playlist new: %v", err)
	}

	cfgOverride := configPath + ".small"
	body, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	small := strings.Replace(string(body), "[burner]", "[burner]\ncapacity_seconds = 100", 1)
	if err := os.WriteFile(cfgOverride, []byte(small), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := runCommand(t, "--config", cfgOverride, "playlist", "add", "tiny", "1"); err == nil {
		t.Fatal("expected capacity error")
	}
}

func TestSearchCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	seedCommandLibrary(t, configPath)

	out, err := runCommand(t, "--config", configPath, "search", "opener")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Opener") || !strings.Contains(out, "Galaxy Arms") {
		t.Fatalf("search output unexpected:\n%s", out)
	}

	out, err = runCommand(t, "--config", configPath, "search", "nothing-matches-this")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No matches") {
		t.Fatalf("empty result not reported:\n%s", out)
	}
}
