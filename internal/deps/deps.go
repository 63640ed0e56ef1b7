// Package deps verifies that the external tools the burn pipeline shells out
// to are installed and resolvable.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"platter/internal/config"
)

// Requirement defines an external dependency the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists every external tool for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "ffprobe", Command: cfg.FFprobeBinary(), Description: "Reads tags and stream details during library scans"},
		{Name: "ffmpeg", Command: cfg.FFmpegBinary(), Description: "Transcodes tracks to CD-DA WAV before burning"},
		{Name: "normalize", Command: cfg.NormalizeBinary(), Description: "Levels track volume across the disc"},
		{Name: "wodim", Command: cfg.WodimBinary(), Description: "Writes the audio CD"},
		{Name: "eject", Command: cfg.EjectBinary(), Description: "Opens the drive tray after a burn", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional dependencies.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
