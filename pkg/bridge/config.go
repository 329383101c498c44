package bridge

import (
	"fmt"
	"time"
)

// Config holds the tunable parameters for the bridge loop.
type Config struct {
	// Width and Height are the target screen resolution in pixels.
	// Normalized pointer positions are scaled to this grid.
	Width  int
	Height int

	// PollInterval is the fixed sleep between ticks, bounding the poll
	// rate on top of the tracker's own frame synchronization.
	PollInterval time.Duration
}

// DefaultConfig returns the recommended configuration: 1080p output at
// roughly 500 ticks per second, plenty for emulator light gun input.
func DefaultConfig() Config {
	return Config{
		Width:        1920,
		Height:       1080,
		PollInterval: 2 * time.Millisecond,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Width, c.Height)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("invalid poll interval %v", c.PollInterval)
	}
	return nil
}
