// Package normalize wraps the normalize CLI, which batch-adjusts the volume
// of staged WAV files so every track on a disc plays at a consistent level.
package normalize
