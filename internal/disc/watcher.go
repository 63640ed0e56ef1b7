package disc

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"platter/internal/logging"
)

// Watcher listens for udev netlink events and fires a callback when media
// appears in the configured drive. WaitForDisc uses it to react to insertions
// between ioctl polls, and `platter drive watch` surfaces them directly.
type Watcher struct {
	logger  *slog.Logger
	device  string
	handler func(ctx context.Context, device string)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewWatcher creates a watcher for the given device. Returns nil when the
// device is empty.
func NewWatcher(device string, logger *slog.Logger, handler func(ctx context.Context, device string)) *Watcher {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil
	}
	return &Watcher{
		logger:  logging.NewComponentLogger(logger, "disc-watcher"),
		device:  device,
		handler: handler,
	}
}

// Start begins listening for udev netlink events. A failure to connect is
// non-fatal: callers fall back to ioctl polling.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		w.logger.Warn("failed to connect to netlink socket; falling back to drive polling",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "ensure the process can open netlink sockets"),
			logging.String(logging.FieldImpact, "disc insertion detected by polling only"),
		)
		return nil
	}

	w.conn = conn
	w.quit = make(chan struct{})
	w.running = true

	quit := w.quit
	go w.watchLoop(ctx, quit)

	w.logger.Info("disc watcher started", logging.String("device", w.device))
	return nil
}

// Stop shuts down the watcher.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	if w.quit != nil {
		close(w.quit)
		w.quit = nil
	}
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
	w.running = false

	w.logger.Info("disc watcher stopped")
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, quit <-chan struct{}) {
	events := make(chan netlink.UEvent)
	errs := make(chan error)

	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(events, errs, mediaMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-events:
			w.handleEvent(ctx, uevent)
		case err := <-errs:
			w.logger.Warn("disc watcher netlink error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "insertion events may be missed"),
			)
		}
	}
}

// mediaMatcher matches media arrival in optical drives:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add.
func mediaMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func (w *Watcher) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	devname := deviceNameFromEvent(uevent)
	if devname == "" || devname != w.device {
		return
	}

	w.logger.Info("media detected",
		logging.String("device", devname),
		logging.String("action", string(uevent.Action)),
	)

	if w.handler != nil {
		w.handler(ctx, devname)
	}
}

// deviceNameFromEvent gets the device path from a uevent, constructing it
// from DEVPATH when DEVNAME is absent.
func deviceNameFromEvent(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	if len(parts) == 0 {
		return ""
	}
	return "/dev/" + parts[len(parts)-1]
}
