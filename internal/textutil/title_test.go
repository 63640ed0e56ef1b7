package textutil_test

import (
	"testing"

	"platter/internal/textutil"
)

func TestTitleFromFilename(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/music/Artist/Album/07 - some_song.flac", "Some Song"},
		{"/music/03.intro.mp3", "Intro"},
		{"/music/12_the-long-road.ogg", "The Long Road"},
		{"track.wav", "Track"},
		{"/music/1999.flac", "1999"},
		{"/music/99 Problems.mp3", "99 Problems"},
		{"...flac", "Unknown"},
	}
	for _, tc := range cases {
		if got := textutil.TitleFromFilename(tc.path); got != tc.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestTitleFromFilenameBareNumberWithSeparator(t *testing.T) {
	// Leading numbers longer than three digits are never treated as track prefixes.
	if got := textutil.TitleFromFilename("/m/2001 - a space odyssey.flac"); got != "2001 A Space Odyssey" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{4799, "79:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := textutil.FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestCleanTag(t *testing.T) {
	if got := textutil.CleanTag("  A   Track\tTitle "); got != "A Track Title" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeTrackName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Track (Live)", "my_track_live"},
		{"AC/DC - Back In Black", "ac_dc_back_in_black"},
		{"  Träume  ", "tr_ume"},
		{"***", "track"},
		{"", "track"},
	}
	for _, tc := range cases {
		if got := textutil.SanitizeTrackName(tc.title); got != tc.want {
			t.Errorf("SanitizeTrackName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
