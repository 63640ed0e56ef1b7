package textutil

import "strings"

// Staged file names stay short so wodim output listing the track files
// remains readable.
const maxTrackNameLen = 48

// SanitizeTrackName converts a track title into a token safe for staged WAV
// file names. ASCII letters are lowercased, digits are kept, and runs of any
// other characters collapse to a single underscore. Returns "track" when
// nothing usable remains.
func SanitizeTrackName(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		default:
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if len(out) > maxTrackNameLen {
		out = strings.TrimRight(out[:maxTrackNameLen], "_")
	}
	if out == "" {
		return "track"
	}
	return out
}
