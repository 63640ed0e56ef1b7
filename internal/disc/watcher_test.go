package disc

import (
	"context"
	"testing"

	"github.com/pilebones/go-udev/netlink"
)

func TestDeviceNameFromEvent(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"devname wins", map[string]string{"DEVNAME": "/dev/sr0", "DEVPATH": "/devices/x/block/sr1"}, "/dev/sr0"},
		{"devpath fallback", map[string]string{"DEVPATH": "/devices/pci0000:00/ata3/host2/block/sr0"}, "/dev/sr0"},
		{"no identifiers", map[string]string{}, ""},
	}
	for _, tc := range cases {
		uevent := netlink.UEvent{Env: tc.env}
		if got := deviceNameFromEvent(uevent); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNewWatcherRequiresDevice(t *testing.T) {
	if w := NewWatcher("  ", nil, nil); w != nil {
		t.Fatal("expected nil watcher for empty device")
	}
	if w := (*Watcher)(nil); w.Running() {
		t.Fatal("nil watcher reports running")
	}
}

func TestHandleEventFiltersDevice(t *testing.T) {
	var fired []string
	w := NewWatcher("/dev/sr0", nil, func(_ context.Context, device string) {
		fired = append(fired, device)
	})

	w.handleEvent(context.Background(), netlink.UEvent{Env: map[string]string{"DEVNAME": "/dev/sr1"}})
	if len(fired) != 0 {
		t.Fatalf("handler fired for foreign device: %v", fired)
	}

	w.handleEvent(context.Background(), netlink.UEvent{Env: map[string]string{"DEVNAME": "/dev/sr0"}})
	if len(fired) != 1 || fired[0] != "/dev/sr0" {
		t.Fatalf("handler not fired for configured device: %v", fired)
	}
}
