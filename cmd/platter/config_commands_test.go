package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("init not reported:\n%s", out)
	}

	body, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, want := range []string{"[paths]", "[library]", "[burner]", "capacity_seconds"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("sample missing %q", want)
		}
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowHonorsConfigFlag(t *testing.T) {
	configPath, baseDir := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{
		"Config path:    " + configPath,
		filepath.Join(baseDir, "music"),
		filepath.Join(baseDir, "staging"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigValidateHonorsConfigFlag(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Config path: "+configPath) {
		t.Fatalf("validate ignored --config:\n%s", out)
	}
	if strings.Contains(out, "defaults were used") {
		t.Fatalf("config file not picked up:\n%s", out)
	}
}

func TestConfigPathPrintsLocation(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, configPath) {
		t.Fatalf("expected %s in output:\n%s", configPath, out)
	}

	missing := filepath.Join(t.TempDir(), "absent.toml")
	out, err = runCommand(t, "--config", missing, "config", "path")
	if err != nil {
		t.Fatalf("config path (missing file): %v", err)
	}
	if !strings.Contains(out, "does not exist yet") {
		t.Fatalf("missing-file note absent:\n%s", out)
	}
}

func TestBurnDryRunPrintsPlan(t *testing.T) {
	configPath, baseDir := writeTestConfig(t)

	// Seed a track whose source file exists so the plan validates.
	src := filepath.Join(baseDir, "music", "one.flac")
	if err := os.WriteFile(src, []byte("fLaC"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	seedTrackAt(t, configPath, src, "One", 125)

	if _, err := runCommand(t, "--config", configPath, "playlist", "new", "mix"); err != nil {
		t.Fatalf("playlist new: %v", err)
	}
	if _, err := runCommand(t, "--config", configPath, "playlist", "add", "mix", "1"); err != nil {
		t.Fatalf("playlist add: %v", err)
	}

	out, err := runCommand(t, "--config", configPath, "burn", "mix", "--dry-run")
	if err != nil {
		t.Fatalf("burn --dry-run: %v", err)
	}
	for _, want := range []string{"One", "2:05", "Playlist: mix", "Device:   /dev/sr0"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan missing %q:\n%s", want, out)
		}
	}
}

func TestBurnSuggestsRetryOnToolFailure(t *testing.T) {
	configPath, baseDir := writeTestConfig(t)

	// A stub tool that exits cleanly without producing output makes the
	// transcode stage fail with an external tool error.
	stub := filepath.Join(baseDir, "stub.sh")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open config: %v", err)
	}
	fmt.Fprintf(f, "\n[tools]\nffmpeg = %q\nffprobe = %q\nnormalize = %q\nwodim = %q\n", stub, stub, stub, stub)
	f.Close()

	src := filepath.Join(baseDir, "music", "one.flac")
	if err := os.WriteFile(src, []byte("fLaC"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	seedTrackAt(t, configPath, src, "One", 125)

	if _, err := runCommand(t, "--config", configPath, "playlist", "new", "mix"); err != nil {
		t.Fatalf("playlist new: %v", err)
	}
	if _, err := runCommand(t, "--config", configPath, "playlist", "add", "mix", "1"); err != nil {
		t.Fatalf("playlist add: %v", err)
	}

	_, err = runCommand(t, "--config", configPath, "burn", "mix")
	if err == nil {
		t.Fatal("expected burn failure")
	}
	if !strings.Contains(err.Error(), "transient failure; check the drive and retry") {
		t.Fatalf("retry hint missing: %v", err)
	}
}

func TestBurnDryRunRejectsMissingSources(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	seedCommandLibrary(t, configPath)

	if _, err := runCommand(t, "--config", configPath, "playlist", "new", "mix"); err != nil {
		t.Fatalf("playlist new: %v", err)
	}
	if _, err := runCommand(t, "--config", configPath, "playlist", "add", "mix", "1"); err != nil {
		t.Fatalf("playlist add: %v", err)
	}

	// The seeded track paths (/music/...) do not exist on disk.
	if _, err := runCommand(t, "--config", configPath, "burn", "mix", "--dry-run"); err == nil {
		t.Fatal("expected validation error for missing source files")
	}
}
