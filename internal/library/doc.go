// Package library manages the sqlite-backed music library: scanned track
// metadata, the full-text search index, and persisted playlists.
package library
