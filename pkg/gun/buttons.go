package gun

// Button identifies one of the controller inputs the bridge cares about.
type Button int

const (
	ButtonFire Button = iota
	ButtonPedal
	ButtonPause
)

func (b Button) String() string {
	switch b {
	case ButtonFire:
		return "fire"
	case ButtonPedal:
		return "pedal"
	case ButtonPause:
		return "pause"
	default:
		return "unknown"
	}
}

// ButtonState is one input's sampled value plus whether it changed since
// the previous tick. The tracking runtime tracks the previous value, so
// no history is kept on this side.
type ButtonState struct {
	Pressed bool `json:"pressed"`
	Changed bool `json:"changed"`
}

// ButtonSample is the per-tick snapshot of all inputs.
type ButtonSample struct {
	Fire  ButtonState `json:"fire"`
	Pedal ButtonState `json:"pedal"`
	Pause ButtonState `json:"pause"`
}

// Get returns the state for the named button.
func (s ButtonSample) Get(b Button) ButtonState {
	switch b {
	case ButtonFire:
		return s.Fire
	case ButtonPedal:
		return s.Pedal
	case ButtonPause:
		return s.Pause
	default:
		return ButtonState{}
	}
}

// Edge describes a button transition observed within a single tick.
type Edge int

const (
	EdgeNone Edge = iota
	EdgePressed
	EdgeReleased
)

func (e Edge) String() string {
	switch e {
	case EdgePressed:
		return "pressed"
	case EdgeReleased:
		return "released"
	default:
		return "none"
	}
}

// ClassifyEdge returns the edge for one input on the current tick, or
// EdgeNone when the value did not change. Pure classification, no state.
func ClassifyEdge(s ButtonState) Edge {
	if !s.Changed {
		return EdgeNone
	}
	if s.Pressed {
		return EdgePressed
	}
	return EdgeReleased
}
