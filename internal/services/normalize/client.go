package normalize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"platter/internal/services"
)

// Leveler defines the behaviour required by the burn pipeline.
type Leveler interface {
	Level(ctx context.Context, files []string, onOutput func(string)) error
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

// Client wraps normalize CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    services.Executor
}

// New constructs a normalize client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("normalize binary required")
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

// Level runs normalize in batch mode over the staged files so they share a
// common average level. All files must exist; normalize rewrites them in
// place.
func (c *Client) Level(ctx context.Context, files []string, onOutput func(string)) error {
	if len(files) == 0 {
		return errors.New("no files to normalize")
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("normalize input missing: %w", err)
		}
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(files)+1)
	args = append(args, "-b")
	args = append(args, files...)

	if err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		if onOutput != nil {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				onOutput(trimmed)
			}
		}
	}); err != nil {
		return services.Annotate(ctx, fmt.Errorf("normalize batch: %w", err))
	}
	return nil
}
