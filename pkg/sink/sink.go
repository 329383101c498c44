// Package sink injects pointer and button events into the OS input stack.
// The production implementation registers a uinput device that other
// programs see as a real absolute-pointing light gun.
package sink

// Axis identifies an absolute position axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Button identifies a sink button. The device exposes a three-button
// absolute pointer, which is what emulators expect a light gun to be.
type Button int

const (
	ButtonPrimary   Button = iota // trigger
	ButtonSecondary               // pedal
	ButtonTertiary                // pause/start
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Sink accepts discrete input events. Events accumulate until Sync, which
// applies the batch atomically. Any write error means the device is gone
// for good; callers treat it as fatal.
type Sink interface {
	// SetAxis queues an absolute position update in pixels.
	SetAxis(axis Axis, value int32) error

	// SetButton queues a button state change.
	SetButton(button Button, pressed bool) error

	// Sync emits a synchronization barrier so everything queued since the
	// last barrier is applied as one report.
	Sync() error

	// Close unregisters the device.
	Close() error
}
