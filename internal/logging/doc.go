// Package logging provides slog handlers and attribute helpers shared across platter.
package logging
