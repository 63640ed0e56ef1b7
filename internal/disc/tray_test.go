package disc

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestDriveStatusString(t *testing.T) {
	cases := []struct {
		status DriveStatus
		want   string
	}{
		{DriveStatusNoInfo, "no_info"},
		{DriveStatusNoDisc, "no_disc"},
		{DriveStatusTrayOpen, "tray_open"},
		{DriveStatusNotReady, "not_ready"},
		{DriveStatusDiscOK, "disc_ok"},
		{DriveStatus(42), "unknown(42)"},
	}
	for _, tc := range cases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("DriveStatus(%d).String() = %q, want %q", int(tc.status), got, tc.want)
		}
	}
}

func TestCheckDriveStatusRejectsEmptyDevice(t *testing.T) {
	if _, err := CheckDriveStatus("   "); err == nil {
		t.Fatal("expected error for empty device path")
	}
}

func TestCheckDriveStatusMissingDevice(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "sr9")
	if _, err := CheckDriveStatus(missing); err == nil {
		t.Fatal("expected error for missing device")
	}
}

func TestAwaitDiscReactsToInsertEvent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	inserted := make(chan struct{}, 1)
	calls := 0
	check := func(string) (DriveStatus, error) {
		calls++
		if calls == 1 {
			inserted <- struct{}{}
			return DriveStatusNoDisc, nil
		}
		return DriveStatusDiscOK, nil
	}

	start := time.Now()
	status, err := awaitDisc(ctx, "/dev/sr0", 30*time.Second, check, inserted)
	if err != nil {
		t.Fatalf("awaitDisc: %v", err)
	}
	if status != DriveStatusDiscOK {
		t.Fatalf("status = %s, want disc_ok", status)
	}
	if calls != 2 {
		t.Fatalf("check ran %d times, want 2", calls)
	}
	// The insert event must re-check immediately instead of sleeping out the
	// 1-second poll interval.
	if elapsed := time.Since(start); elapsed >= time.Second {
		t.Fatalf("wait took %s despite insert event", elapsed)
	}
}

func TestAwaitDiscTimesOut(t *testing.T) {
	check := func(string) (DriveStatus, error) {
		return DriveStatusNoDisc, nil
	}
	status, err := awaitDisc(context.Background(), "/dev/sr0", time.Nanosecond, check, nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if status != DriveStatusNoDisc {
		t.Fatalf("status = %s, want no_disc", status)
	}
}

func TestWaitForDiscPropagatesOpenError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	missing := filepath.Join(t.TempDir(), "sr9")
	if _, err := WaitForDisc(ctx, missing, 5*time.Second); err == nil {
		t.Fatal("expected error for missing device")
	}
}
