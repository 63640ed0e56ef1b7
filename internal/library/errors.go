package library

import "errors"

var (
	// ErrTrackNotFound indicates a track id with no matching library row.
	ErrTrackNotFound = errors.New("track not found")
	// ErrPlaylistNotFound indicates a playlist name with no matching row.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrPlaylistExists indicates a create collided with an existing playlist name.
	ErrPlaylistExists = errors.New("playlist already exists")
)
