package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig creates an isolated config file over temp directories and
// returns its path along with the base directory.
func writeTestConfig(t *testing.T) (configPath, baseDir string) {
	t.Helper()

	baseDir = t.TempDir()
	musicDir := filepath.Join(baseDir, "music")
	if err := os.MkdirAll(musicDir, 0o755); err != nil {
		t.Fatalf("mkdir music dir: %v", err)
	}

	configPath = filepath.Join(baseDir, "config.toml")
	body := fmt.Sprintf(`[paths]
staging_dir = %q
log_dir = %q
database_path = %q

[library]
music_dir = %q

[burner]
device = "/dev/sr0"
wait_for_disc = false
`,
		filepath.Join(baseDir, "staging"),
		filepath.Join(baseDir, "logs"),
		filepath.Join(baseDir, "library.db"),
		musicDir,
	)
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, baseDir
}

// runCommand executes the root command with args and returns its combined
// output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
