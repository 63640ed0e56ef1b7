package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	var problems []error

	if c.Paths.StagingDir == "" {
		problems = append(problems, errors.New("paths.staging_dir is required"))
	}
	if c.Paths.DatabasePath == "" {
		problems = append(problems, errors.New("paths.database_path is required"))
	}
	if c.Burner.Device == "" {
		problems = append(problems, errors.New("burner.device is required"))
	}
	if c.Burner.CapacitySeconds <= 0 {
		problems = append(problems, fmt.Errorf("burner.capacity_seconds must be positive, got %d", c.Burner.CapacitySeconds))
	}
	if c.Burner.Speed < 0 {
		problems = append(problems, fmt.Errorf("burner.speed must not be negative, got %d", c.Burner.Speed))
	}
	if c.Burner.DiscTimeoutSeconds < 0 {
		problems = append(problems, fmt.Errorf("burner.disc_timeout_seconds must not be negative, got %d", c.Burner.DiscTimeoutSeconds))
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}
	return nil
}
