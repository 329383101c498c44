// Package source provides pose and button samples from the tracking
// runtime. The bridge only ever sees the Source interface; the production
// implementation is a WebSocket client talking to a tracker sidecar.
package source

import (
	"context"

	"github.com/openlightgun/go-lightgun/pkg/gun"
)

// Status classifies the outcome of one poll.
type Status int

const (
	// StatusOK means the sample is valid for this tick.
	StatusOK Status = iota

	// StatusNotFocused means the runtime has no data right now. The tick
	// is skipped entirely and the loop polls again.
	StatusNotFocused

	// StatusSessionEnding means the tracking session is shutting down and
	// no further samples will arrive.
	StatusSessionEnding
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFocused:
		return "not_focused"
	case StatusSessionEnding:
		return "session_ending"
	default:
		return "unknown"
	}
}

// Sample is one tick's pose and button snapshot.
type Sample struct {
	Pose    gun.Pose         `json:"pose"`
	Buttons gun.ButtonSample `json:"buttons"`
}

// Source yields sampled controller state at the bridge's poll rate.
type Source interface {
	// Poll blocks until the next sample or status is available, bounded
	// by the runtime's own frame synchronization. A non-nil error means
	// the source is unusable and the run must end.
	Poll(ctx context.Context) (Sample, Status, error)

	// Close releases the connection to the runtime.
	Close() error
}
