package burn

import "fmt"

// Stage identifies a phase of the burn pipeline.
type Stage string

const (
	StagePrepare   Stage = "prepare"
	StageTranscode Stage = "transcode"
	StageNormalize Stage = "normalize"
	StageWaitDisc  Stage = "wait_disc"
	StageBurn      Stage = "burn"
	StageDone      Stage = "done"
)

// Event reports pipeline progress to the caller. TrackIndex is the zero-based
// position within the plan, or -1 for stage-level events.
type Event struct {
	Stage      Stage
	Message    string
	TrackIndex int
	TrackTitle string
	Percent    float64
}

// Line renders the event as a console line. Percent-only updates from the
// transcode and write stages become progress lines; events with nothing to
// show render empty.
func (e Event) Line() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
	case e.Percent > 0 && e.TrackTitle != "":
		return fmt.Sprintf("[%s] %s %.0f%%", e.Stage, e.TrackTitle, e.Percent)
	case e.Percent > 0:
		return fmt.Sprintf("[%s] %.0f%%", e.Stage, e.Percent)
	default:
		return ""
	}
}

// EventFunc receives pipeline events. Implementations must not block.
type EventFunc func(Event)

func (f EventFunc) emit(event Event) {
	if f != nil {
		f(event)
	}
}
