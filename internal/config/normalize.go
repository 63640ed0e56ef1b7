package config

import (
	"fmt"
	"strings"
)

// normalize expands path fields and canonicalizes list values before validation.
func (c *Config) normalize() error {
	paths := []struct {
		name  string
		value *string
	}{
		{"staging_dir", &c.Paths.StagingDir},
		{"log_dir", &c.Paths.LogDir},
		{"database_path", &c.Paths.DatabasePath},
		{"music_dir", &c.Library.MusicDir},
	}
	for _, p := range paths {
		expanded, err := expandPath(strings.TrimSpace(*p.value))
		if err != nil {
			return fmt.Errorf("normalize %s: %w", p.name, err)
		}
		*p.value = expanded
	}

	c.Burner.Device = strings.TrimSpace(c.Burner.Device)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	c.Library.Extensions = normalizeExtensions(c.Library.Extensions)
	if len(c.Library.Extensions) == 0 {
		c.Library.Extensions = defaultExtensions()
	}
	return nil
}

func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		cleaned := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
