package services

import (
	"context"
	"fmt"
	"strings"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	stageKey     contextKey = "stage"
	trackIDKey   contextKey = "track_id"
)

// WithSessionID annotates context with the burn session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the burn session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTrackID annotates context with the library track identifier.
func WithTrackID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, trackIDKey, id)
}

// TrackIDFromContext extracts the library track identifier if present.
func TrackIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(trackIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// Annotate prefixes err with the pipeline annotations carried by ctx, so a
// tool failure reads as "stage transcode, track 12, session burn-...: err".
// The error chain is preserved for errors.Is classification.
func Annotate(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	parts := make([]string, 0, 3)
	if stage, ok := StageFromContext(ctx); ok {
		parts = append(parts, "stage "+stage)
	}
	if id, ok := TrackIDFromContext(ctx); ok {
		parts = append(parts, fmt.Sprintf("track %d", id))
	}
	if session, ok := SessionIDFromContext(ctx); ok {
		parts = append(parts, "session "+session)
	}
	if len(parts) == 0 {
		return err
	}
	return fmt.Errorf("%s: %w", strings.Join(parts, ", "), err)
}
