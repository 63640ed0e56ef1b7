// Command platter is an audio-CD mastering tool: it scans a music library
// into sqlite, builds playlists capped at disc capacity, and burns them via
// ffmpeg, normalize, and wodim.
package main
