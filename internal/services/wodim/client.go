package wodim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"platter/internal/services"
)

// TrackProgress captures wodim per-track write progress.
type TrackProgress struct {
	Track     int
	WrittenMB int
	TotalMB   int
}

// Percent returns write completion for the track, or 0 when the total is
// unknown.
func (p TrackProgress) Percent() float64 {
	if p.TotalMB <= 0 {
		return 0
	}
	return min(100, float64(p.WrittenMB)/float64(p.TotalMB)*100)
}

// Request describes a single burn invocation.
type Request struct {
	Device string
	Speed  int
	Eject  bool
	Files  []string
}

// Burner defines the behaviour required by the burn pipeline.
type Burner interface {
	Burn(ctx context.Context, req Request, onProgress func(TrackProgress), onOutput func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps wodim CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    services.Executor
}

// New constructs a wodim client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("wodim binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Burn writes the staged WAV files to disc in order. Disc-at-once mode with
// padding keeps the gaps between tracks silent; -audio interprets every file
// as CD-DA.
func (c *Client) Burn(ctx context.Context, req Request, onProgress func(TrackProgress), onOutput func(string)) error {
	if strings.TrimSpace(req.Device) == "" {
		return errors.New("burn device required")
	}
	if len(req.Files) == 0 {
		return errors.New("no files to burn")
	}
	for _, file := range req.Files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("burn input missing: %w", err)
		}
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"-v"}
	if req.Eject {
		args = append(args, "-eject")
	}
	args = append(args, "-dao", "-pad")
	if req.Speed > 0 {
		args = append(args, "speed="+strconv.Itoa(req.Speed))
	}
	args = append(args, "dev="+strings.TrimSpace(req.Device), "-audio")
	args = append(args, req.Files...)

	var tail []string
	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return
		}
		if update, ok := parseTrackProgress(trimmed); ok {
			if onProgress != nil {
				onProgress(update)
			}
			return
		}
		if onOutput != nil {
			onOutput(trimmed)
		}
		tail = append(tail, trimmed)
		if len(tail) > 5 {
			tail = tail[1:]
		}
	})
	if err != nil {
		if len(tail) > 0 {
			return services.Annotate(ctx, fmt.Errorf("wodim burn: %w: %s", err, strings.Join(tail, "; ")))
		}
		return services.Annotate(ctx, fmt.Errorf("wodim burn: %w", err))
	}
	return nil
}

// parseTrackProgress handles wodim's write status lines:
//
//	Track 02:    12 of    38 MB written (fifo 100%) [buf  99%]   4.1x.
func parseTrackProgress(line string) (TrackProgress, bool) {
	if !strings.HasPrefix(line, "Track ") {
		return TrackProgress{}, false
	}
	rest := line[len("Track "):]
	trackStr, rest, found := strings.Cut(rest, ":")
	if !found {
		return TrackProgress{}, false
	}
	track, err := strconv.Atoi(strings.TrimSpace(trackStr))
	if err != nil {
		return TrackProgress{}, false
	}

	fields := strings.Fields(rest)
	// Expect: <written> of <total> MB written ...
	if len(fields) < 5 || fields[1] != "of" || fields[3] != "MB" || !strings.HasPrefix(fields[4], "written") {
		return TrackProgress{}, false
	}
	written, err := strconv.Atoi(fields[0])
	if err != nil {
		return TrackProgress{}, false
	}
	total, err := strconv.Atoi(fields[2])
	if err != nil {
		return TrackProgress{}, false
	}
	return TrackProgress{Track: track, WrittenMB: written, TotalMB: total}, true
}
