package services_test

import (
	"context"
	"errors"
	"testing"

	"platter/internal/services"
)

func TestAnnotateAddsPipelineContext(t *testing.T) {
	ctx := services.WithSessionID(context.Background(), "burn-abc")
	ctx = services.WithStage(ctx, "transcode")
	ctx = services.WithTrackID(ctx, 7)

	base := errors.New("boom")
	err := services.Annotate(ctx, base)
	want := "stage transcode, track 7, session burn-abc: boom"
	if err.Error() != want {
		t.Fatalf("Annotate() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, base) {
		t.Fatal("annotated error lost its chain")
	}
}

func TestAnnotateLeavesBareContextAlone(t *testing.T) {
	base := errors.New("boom")
	if err := services.Annotate(context.Background(), base); err != base {
		t.Fatalf("expected err unchanged, got %v", err)
	}
	if err := services.Annotate(context.Background(), nil); err != nil {
		t.Fatalf("expected nil for nil error, got %v", err)
	}
}
