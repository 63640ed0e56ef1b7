// Package ffmpeg wraps the ffmpeg CLI for transcoding library tracks into
// the CD-DA input format: 44.1 kHz, 16-bit, stereo WAV.
package ffmpeg
