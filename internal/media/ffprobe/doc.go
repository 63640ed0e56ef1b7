// Package ffprobe wraps ffprobe JSON inspection for tag and stream metadata.
package ffprobe
