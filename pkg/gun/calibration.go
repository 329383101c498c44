package gun

import (
	"errors"
	"fmt"
	"math"
)

// Phase is the calibration lifecycle. It only ever moves forward, and
// PhaseActive is terminal for the remainder of the run.
type Phase int

const (
	PhaseRecordingFirstCorner Phase = iota
	PhaseRecordingSecondCorner
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseRecordingFirstCorner:
		return "recording_first_corner"
	case PhaseRecordingSecondCorner:
		return "recording_second_corner"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

// Calibration is the captured screen-plane geometry: two opposite corners
// of an axis-aligned rectangle, plus the z plane the screen sits on.
type Calibration struct {
	X0, Y0 float64
	X1, Y1 float64
	Depth  float64
}

// ErrDegenerateScreen is returned when calibration completes with a
// rectangle that has no width or no height. There is no plane to project
// onto, so the bridge cannot continue.
var ErrDegenerateScreen = errors.New("calibration rectangle has zero extent")

// Transition computes the next phase for one tick's fire edge. A corner is
// captured only on a press edge; a held trigger does nothing. Exposed as a
// pure function so sequencing can be checked without a Calibrator.
func Transition(phase Phase, fire Edge) (next Phase, capture bool) {
	if fire != EdgePressed {
		return phase, false
	}
	switch phase {
	case PhaseRecordingFirstCorner:
		return PhaseRecordingSecondCorner, true
	case PhaseRecordingSecondCorner:
		return PhaseActive, true
	default:
		return phase, false
	}
}

// Calibrator captures the screen rectangle corner by corner, then freezes
// the geometry for the rest of the session. There is no runtime reset; a
// mis-aimed corner means restarting the process.
type Calibrator struct {
	phase  Phase
	cal    Calibration
	firstZ float64
}

// NewCalibrator returns a calibrator waiting for the first corner.
func NewCalibrator() *Calibrator {
	return &Calibrator{phase: PhaseRecordingFirstCorner}
}

// Phase returns the current calibration phase.
func (c *Calibrator) Phase() Phase {
	return c.phase
}

// Active reports whether calibration is complete.
func (c *Calibrator) Active() bool {
	return c.phase == PhaseActive
}

// Calibration returns the captured geometry. Only meaningful once Active.
func (c *Calibrator) Calibration() Calibration {
	return c.cal
}

// Advance feeds one tick's fire edge and pose into the state machine,
// reporting whether a corner was captured. The plane depth is the nearer
// of the two corner depths, tolerating the user standing at a slightly
// different distance for each corner. The second corner's x and y are
// taken exactly as aimed; any skew between the two corners is tolerated,
// not corrected.
func (c *Calibrator) Advance(fire Edge, pose Pose) (bool, error) {
	next, capture := Transition(c.phase, fire)
	if !capture {
		return false, nil
	}
	p := pose.Position
	switch c.phase {
	case PhaseRecordingFirstCorner:
		c.cal.X0, c.cal.Y0 = p.X, p.Y
		c.firstZ = p.Z
	case PhaseRecordingSecondCorner:
		c.cal.X1, c.cal.Y1 = p.X, p.Y
		c.cal.Depth = math.Min(c.firstZ, p.Z)
		if c.cal.X1 == c.cal.X0 || c.cal.Y1 == c.cal.Y0 {
			return false, fmt.Errorf("%w: corners (%.3f, %.3f) and (%.3f, %.3f)",
				ErrDegenerateScreen, c.cal.X0, c.cal.Y0, c.cal.X1, c.cal.Y1)
		}
	}
	c.phase = next
	return true, nil
}
