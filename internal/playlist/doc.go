// Package playlist enforces the audio-CD capacity budget over an ordered
// set of library tracks. The store persists playlists without judging their
// length; this package decides what fits on a disc.
package playlist
