// Package wodim wraps the wodim CLI for writing staged WAV files to an
// audio CD in disc-at-once mode.
package wodim
