package library

import (
	"strings"
	"time"
)

// Track represents a scanned music file persisted in sqlite.
type Track struct {
	ID           int64
	Path         string
	Title        string
	Artist       string
	Album        string
	TrackNo      int64
	Year         int64
	DurationSec  int64
	BitDepth     int64
	BitrateKbps  int64
	SampleRateHz int64
}

// Format returns the file extension of the track's source path, without the dot.
func (t Track) Format() string {
	idx := strings.LastIndexByte(t.Path, '.')
	if idx < 0 || idx == len(t.Path)-1 {
		return "unknown"
	}
	return strings.ToLower(t.Path[idx+1:])
}

// TrackInput carries the metadata extracted for a single file during a scan.
type TrackInput struct {
	Path         string
	Title        string
	Artist       string
	Album        string
	TrackNo      int64
	Year         int64
	DurationSec  int64
	BitDepth     int64
	BitrateKbps  int64
	SampleRateHz int64
}

// Playlist represents a persisted playlist.
type Playlist struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlaylistSummary aggregates a playlist with its track count and total duration.
type PlaylistSummary struct {
	Playlist
	TrackCount  int
	DurationSec int64
}

// AlbumSummary aggregates per-album track counts and durations.
type AlbumSummary struct {
	Album       string
	Artist      string
	TrackCount  int
	DurationSec int64
}
