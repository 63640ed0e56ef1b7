package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// TitleFromFilename derives a display title from a media file path when the
// file carries no title tag. The extension and any leading track number
// ("07 - ", "07. ", "07_") are stripped, separators become spaces, and the
// result is title-cased.
func TitleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = stripTrackPrefix(name)
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Unknown"
	}
	return titleCaser.String(name)
}

// stripTrackPrefix removes a leading track number and its separator. Only a
// punctuation separator marks a prefix: "99 Problems" keeps its number.
func stripTrackPrefix(name string) string {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 0 || i > 3 {
		return name
	}
	rest := name[i:]
	trimmed := strings.TrimLeft(rest, " .-_")
	if trimmed == rest || trimmed == "" {
		return name
	}
	if !strings.ContainsAny(rest[:len(rest)-len(trimmed)], ".-_") {
		return name
	}
	return trimmed
}

// CleanTag trims whitespace and collapses internal runs of spaces in a
// metadata tag value.
func CleanTag(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
