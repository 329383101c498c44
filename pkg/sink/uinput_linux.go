//go:build linux

package sink

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux input event types and codes we emit (from linux/input-event-codes.h).
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0x00

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112

	absX = 0x00
	absY = 0x01
)

// uinput ioctls (from linux/uinput.h).
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567

	busUSB = 0x03

	maxNameSize = 80
	absSize     = 64
)

// inputID mirrors struct input_id.
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev, the legacy device setup blob
// written to the fd before UI_DEV_CREATE.
type userDev struct {
	Name       [maxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [absSize]int32
	Absmin     [absSize]int32
	Absfuzz    [absSize]int32
	Absflat    [absSize]int32
}

// inputEvent mirrors struct input_event. unix.Timeval keeps the layout
// correct across 32- and 64-bit kernels.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

var buttonCodes = map[Button]uint16{
	ButtonPrimary:   btnLeft,
	ButtonSecondary: btnRight,
	ButtonTertiary:  btnMiddle,
}

var axisCodes = map[Axis]uint16{
	AxisX: absX,
	AxisY: absY,
}

// Uinput is a virtual absolute-pointing device backed by /dev/uinput.
type Uinput struct {
	fd     int
	closed bool
}

var _ Sink = (*Uinput)(nil)

// NewUinput registers a virtual light gun device covering a width x height
// pixel grid. The caller needs write access to path (typically /dev/uinput,
// root or the input group).
func NewUinput(path string, width, height int) (*Uinput, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", width, height)
	}

	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	u := &Uinput{fd: fd}
	if err := u.setup(width, height); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return u, nil
}

func (u *Uinput) setup(width, height int) error {
	for _, ev := range []int{evKey, evAbs} {
		if err := unix.IoctlSetInt(u.fd, uiSetEvBit, ev); err != nil {
			return fmt.Errorf("UI_SET_EVBIT %d: %w", ev, err)
		}
	}
	for _, code := range buttonCodes {
		if err := unix.IoctlSetInt(u.fd, uiSetKeyBit, int(code)); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %#x: %w", code, err)
		}
	}
	for _, code := range axisCodes {
		if err := unix.IoctlSetInt(u.fd, uiSetAbsBit, int(code)); err != nil {
			return fmt.Errorf("UI_SET_ABSBIT %#x: %w", code, err)
		}
	}

	var dev userDev
	copy(dev.Name[:], "go-lightgun")
	dev.ID = inputID{Bustype: busUSB, Vendor: 0x1209, Product: 0x4c47, Version: 1}
	dev.Absmin[absX] = 0
	dev.Absmax[absX] = int32(width)
	dev.Absmin[absY] = 0
	dev.Absmax[absY] = int32(height)

	buf := (*[unsafe.Sizeof(dev)]byte)(unsafe.Pointer(&dev))[:]
	if _, err := unix.Write(u.fd, buf); err != nil {
		return fmt.Errorf("write device setup: %w", err)
	}
	if err := unix.IoctlSetInt(u.fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

func (u *Uinput) writeEvent(etype, code uint16, value int32) error {
	if u.closed {
		return fmt.Errorf("uinput device is closed")
	}
	ev := inputEvent{Type: etype, Code: code, Value: value}
	buf := (*[unsafe.Sizeof(ev)]byte)(unsafe.Pointer(&ev))[:]
	if _, err := unix.Write(u.fd, buf); err != nil {
		return fmt.Errorf("write input event: %w", err)
	}
	return nil
}

// SetAxis queues an absolute position update.
func (u *Uinput) SetAxis(axis Axis, value int32) error {
	code, ok := axisCodes[axis]
	if !ok {
		return fmt.Errorf("unknown axis %v", axis)
	}
	return u.writeEvent(evAbs, code, value)
}

// SetButton queues a button state change.
func (u *Uinput) SetButton(button Button, pressed bool) error {
	code, ok := buttonCodes[button]
	if !ok {
		return fmt.Errorf("unknown button %v", button)
	}
	var value int32
	if pressed {
		value = 1
	}
	return u.writeEvent(evKey, code, value)
}

// Sync emits a SYN_REPORT so the kernel applies the queued batch.
func (u *Uinput) Sync() error {
	return u.writeEvent(evSyn, synReport, 0)
}

// Close destroys the virtual device.
func (u *Uinput) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if err := unix.IoctlSetInt(u.fd, uiDevDestroy, 0); err != nil {
		unix.Close(u.fd)
		return fmt.Errorf("UI_DEV_DESTROY: %w", err)
	}
	return unix.Close(u.fd)
}
