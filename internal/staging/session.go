// Package staging manages per-burn working directories. Each burn gets a
// unique session directory under the configured staging root (normally on
// tmpfs) where transcoded WAVs live until wodim finishes with them.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Session is a working directory for a single burn.
type Session struct {
	ID   string
	Root string
}

// NewSession creates a fresh session directory under the staging root.
func NewSession(stagingRoot string) (*Session, error) {
	stagingRoot = strings.TrimSpace(stagingRoot)
	if stagingRoot == "" {
		return nil, fmt.Errorf("staging root required")
	}
	id := uuid.NewString()
	root := filepath.Join(stagingRoot, "burn-"+id)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &Session{ID: id, Root: root}, nil
}

// TrackPath returns the staged WAV path for the given track position.
func (s *Session) TrackPath(position int, name string) string {
	return filepath.Join(s.Root, fmt.Sprintf("%02d-%s.wav", position+1, name))
}

// Remove deletes the session directory and everything in it.
func (s *Session) Remove() error {
	if s == nil || s.Root == "" {
		return nil
	}
	if err := os.RemoveAll(s.Root); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	return nil
}
