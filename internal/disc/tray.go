package disc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// ioctlCDROMDriveStatus is the Linux ioctl number for CDROM_DRIVE_STATUS.
const ioctlCDROMDriveStatus = 0x5326

// DriveStatus represents the result of a CDROM_DRIVE_STATUS ioctl call.
type DriveStatus int

const (
	DriveStatusNoInfo   DriveStatus = 0
	DriveStatusNoDisc   DriveStatus = 1
	DriveStatusTrayOpen DriveStatus = 2
	DriveStatusNotReady DriveStatus = 3
	DriveStatusDiscOK   DriveStatus = 4
)

// String returns a human-readable label for the drive status.
func (s DriveStatus) String() string {
	switch s {
	case DriveStatusNoInfo:
		return "no_info"
	case DriveStatusNoDisc:
		return "no_disc"
	case DriveStatusTrayOpen:
		return "tray_open"
	case DriveStatusNotReady:
		return "not_ready"
	case DriveStatusDiscOK:
		return "disc_ok"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// CheckDriveStatus queries the drive state using the CDROM_DRIVE_STATUS ioctl.
// Returns an error if the device cannot be opened or the ioctl fails.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	devicePath = strings.TrimSpace(devicePath)
	if devicePath == "" {
		return DriveStatusNoInfo, fmt.Errorf("empty device path")
	}

	fd, err := unix.Open(devicePath, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return DriveStatusNoInfo, fmt.Errorf("open %s: %w", devicePath, err)
	}
	defer unix.Close(fd) //nolint:errcheck

	status, err := unix.IoctlRetInt(fd, ioctlCDROMDriveStatus)
	if err != nil {
		return DriveStatusNoInfo, fmt.Errorf("ioctl CDROM_DRIVE_STATUS on %s: %w", devicePath, err)
	}

	return DriveStatus(status), nil
}

// WaitForDisc blocks until the drive reports DriveStatusDiscOK, the timeout
// elapses, or the context is cancelled. It polls the ioctl at 1-second
// intervals and, when the netlink socket is available, a udev watcher cuts
// the wait short the moment media is inserted.
func WaitForDisc(ctx context.Context, devicePath string, timeout time.Duration) (DriveStatus, error) {
	inserted := make(chan struct{}, 1)
	watcher := NewWatcher(devicePath, nil, func(context.Context, string) {
		select {
		case inserted <- struct{}{}:
		default:
		}
	})
	if watcher != nil {
		_ = watcher.Start(ctx)
		defer watcher.Stop()
	}

	return awaitDisc(ctx, devicePath, timeout, CheckDriveStatus, inserted)
}

// awaitDisc runs the poll loop with an injectable status check. An event on
// inserted re-checks the drive immediately instead of waiting out the poll
// interval.
func awaitDisc(ctx context.Context, devicePath string, timeout time.Duration, check func(string) (DriveStatus, error), inserted <-chan struct{}) (DriveStatus, error) {
	const pollInterval = 1 * time.Second

	deadline := time.Now().Add(timeout)
	var lastStatus DriveStatus
	for {
		status, err := check(devicePath)
		if err != nil {
			return status, err
		}
		lastStatus = status
		if status == DriveStatusDiscOK {
			return status, nil
		}
		if timeout > 0 && time.Now().After(deadline) {
			return lastStatus, fmt.Errorf("no disc in %s after %s (last status: %s)", devicePath, timeout, lastStatus)
		}

		select {
		case <-ctx.Done():
			return lastStatus, ctx.Err()
		case <-inserted:
		case <-time.After(pollInterval):
		}
	}
}
