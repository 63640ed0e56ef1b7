package burn

import (
	"fmt"
	"os"

	"platter/internal/config"
	"platter/internal/library"
	"platter/internal/playlist"
	"platter/internal/services"
)

// Plan is a validated description of a burn: which tracks, in what order,
// and how much of the disc they consume.
type Plan struct {
	PlaylistName string
	Tracks       []*library.Track
	DurationSec  int64
	CapacitySec  int64
}

// Remaining returns the unused disc seconds.
func (p *Plan) Remaining() int64 {
	if p.DurationSec >= p.CapacitySec {
		return 0
	}
	return p.CapacitySec - p.DurationSec
}

// BuildPlan validates the playlist tracks for burning. It rejects empty
// playlists, playlists over capacity, and tracks whose source files have
// disappeared since the last scan.
func BuildPlan(cfg *config.Config, playlistName string, tracks []*library.Track) (*Plan, error) {
	if len(tracks) == 0 {
		return nil, services.Wrap(services.ErrValidation, "plan", "", fmt.Sprintf("playlist %q is empty", playlistName), nil)
	}

	budget := playlist.NewBudget(cfg.Burner.CapacitySeconds)
	for _, track := range tracks {
		if track.DurationSec <= 0 {
			return nil, services.Wrap(services.ErrValidation, "plan", "",
				fmt.Sprintf("track %q has no duration; rescan the library", track.Title), nil)
		}
		if err := budget.Add(track); err != nil {
			return nil, services.Wrap(services.ErrValidation, "plan", "",
				fmt.Sprintf("track %q does not fit", track.Title), err)
		}
	}

	for _, track := range tracks {
		if _, err := os.Stat(track.Path); err != nil {
			return nil, services.Wrap(services.ErrNotFound, "plan", "",
				fmt.Sprintf("source file for %q missing; rescan the library", track.Title), err)
		}
	}

	return &Plan{
		PlaylistName: playlistName,
		Tracks:       tracks,
		DurationSec:  budget.Used(),
		CapacitySec:  budget.Capacity(),
	}, nil
}
