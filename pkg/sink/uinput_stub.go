//go:build !linux

package sink

import "fmt"

// NewUinput returns an error on non-Linux platforms.
func NewUinput(path string, width, height int) (Sink, error) {
	return nil, fmt.Errorf("uinput is only available on linux")
}
