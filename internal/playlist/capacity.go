package playlist

import (
	"fmt"

	"platter/internal/library"
	"platter/internal/textutil"
)

// DefaultCapacitySeconds is the red book audio-CD playback limit: 79:59.
const DefaultCapacitySeconds int64 = 4799

// ErrCapacityExceeded indicates an addition would push a playlist past the
// disc capacity.
type ErrCapacityExceeded struct {
	TrackDuration int64
	Remaining     int64
	Capacity      int64
}

func (e *ErrCapacityExceeded) Error() string {
	return fmt.Sprintf("track is %s but only %s of %s remains on the disc",
		textutil.FormatDuration(e.TrackDuration),
		textutil.FormatDuration(e.Remaining),
		textutil.FormatDuration(e.Capacity))
}

// Budget tracks how much of a disc's playback time a playlist consumes.
type Budget struct {
	capacity int64
	used     int64
}

// NewBudget creates a budget for the given capacity. Non-positive capacities
// fall back to the red book default.
func NewBudget(capacitySeconds int64) *Budget {
	if capacitySeconds <= 0 {
		capacitySeconds = DefaultCapacitySeconds
	}
	return &Budget{capacity: capacitySeconds}
}

// BudgetFor builds a budget already charged with the given tracks.
func BudgetFor(capacitySeconds int64, tracks []*library.Track) *Budget {
	budget := NewBudget(capacitySeconds)
	for _, track := range tracks {
		budget.used += track.DurationSec
	}
	return budget
}

// Capacity returns the disc capacity in seconds.
func (b *Budget) Capacity() int64 { return b.capacity }

// Used returns the seconds already consumed.
func (b *Budget) Used() int64 { return b.used }

// Remaining returns the seconds still available, never negative.
func (b *Budget) Remaining() int64 {
	if b.used >= b.capacity {
		return 0
	}
	return b.capacity - b.used
}

// Fits reports whether a track of the given duration still fits.
func (b *Budget) Fits(durationSec int64) bool {
	return b.used+durationSec <= b.capacity
}

// Add charges a track against the budget, or returns ErrCapacityExceeded.
func (b *Budget) Add(track *library.Track) error {
	if !b.Fits(track.DurationSec) {
		return &ErrCapacityExceeded{
			TrackDuration: track.DurationSec,
			Remaining:     b.Remaining(),
			Capacity:      b.capacity,
		}
	}
	b.used += track.DurationSec
	return nil
}

// TotalDuration sums the durations of the given tracks.
func TotalDuration(tracks []*library.Track) int64 {
	var total int64
	for _, track := range tracks {
		total += track.DurationSec
	}
	return total
}

// Describe renders a "used / capacity (remaining free)" line for prompts
// and tables.
func (b *Budget) Describe() string {
	return fmt.Sprintf("%s / %s (%s free)",
		textutil.FormatDuration(b.used),
		textutil.FormatDuration(b.capacity),
		textutil.FormatDuration(b.Remaining()))
}
