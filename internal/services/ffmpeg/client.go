package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"platter/internal/services"
)

// ProgressUpdate captures ffmpeg transcode progress.
type ProgressUpdate struct {
	OutTime time.Duration
	Percent float64
	Done    bool
}

// Transcoder defines the behaviour required by the burn pipeline.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string, sourceDuration time.Duration, progress func(ProgressUpdate)) error
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

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    services.Executor
}

// New constructs an ffmpeg client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
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

// Transcode converts src into a CD-DA ready WAV at dst: 44.1 kHz sample rate,
// signed 16-bit samples, two channels. sourceDuration, when known, drives the
// percent field of progress updates.
func (c *Client) Transcode(ctx context.Context, src, dst string, sourceDuration time.Duration, progress func(ProgressUpdate)) error {
	if strings.TrimSpace(src) == "" {
		return errors.New("transcode source required")
	}
	if strings.TrimSpace(dst) == "" {
		return errors.New("transcode destination required")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create transcode destination: %w", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-hide_banner",
		"-nostdin",
		"-v", "error",
		"-progress", "pipe:1",
		"-i", src,
		"-ar", "44100",
		"-sample_fmt", "s16",
		"-ac", "2",
		"-y", dst,
	}

	var toolErrs []string
	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		update, emit, consumed := parseProgress(line, sourceDuration)
		if emit && progress != nil {
			progress(update)
		}
		if consumed {
			return
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			toolErrs = append(toolErrs, trimmed)
		}
	})
	if err != nil {
		if len(toolErrs) > 0 {
			return services.Annotate(ctx, fmt.Errorf("ffmpeg transcode: %w: %s", err, strings.Join(toolErrs, "; ")))
		}
		return services.Annotate(ctx, fmt.Errorf("ffmpeg transcode: %w", err))
	}

	if info, statErr := os.Stat(dst); statErr != nil || info.Size() == 0 {
		return services.Annotate(ctx, fmt.Errorf("ffmpeg produced no output for %s", src))
	}
	return nil
}

// parseProgress handles the key=value lines emitted by -progress pipe:1.
// emit marks lines that carry an update worth forwarding; consumed marks
// lines that belong to the progress stream either way.
func parseProgress(line string, sourceDuration time.Duration) (update ProgressUpdate, emit, consumed bool) {
	line = strings.TrimSpace(line)
	key, value, found := strings.Cut(line, "=")
	if !found {
		return ProgressUpdate{}, false, false
	}
	switch key {
	case "out_time_us", "out_time_ms":
		// Both keys carry microseconds in modern ffmpeg builds.
		us, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || us < 0 {
			return ProgressUpdate{}, false, true
		}
		update = ProgressUpdate{OutTime: time.Duration(us) * time.Microsecond}
		if sourceDuration > 0 {
			update.Percent = min(100, float64(update.OutTime)/float64(sourceDuration)*100)
		}
		return update, true, true
	case "progress":
		if strings.TrimSpace(value) == "end" {
			return ProgressUpdate{Percent: 100, OutTime: sourceDuration, Done: true}, true, true
		}
		return ProgressUpdate{}, false, true
	case "frame", "fps", "bitrate", "total_size", "out_time", "dup_frames", "drop_frames", "speed", "stream_0_0_q":
		return ProgressUpdate{}, false, true
	default:
		return ProgressUpdate{}, false, false
	}
}
