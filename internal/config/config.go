// Package config provides configuration helpers for go-lightgun commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the bridge process.
const (
	DefaultTrackerURL = "ws://127.0.0.1:9448/pose"
	DefaultUinputPath = "/dev/uinput"
	DefaultWidth      = 1920
	DefaultHeight     = 1080
)

// TrackerURL returns the tracker sidecar URL from TRACKER_URL env var.
// Falls back to the provided default if not set.
func TrackerURL(fallback string) string {
	if url := os.Getenv("TRACKER_URL"); url != "" {
		return url
	}
	return fallback
}

// UinputPath returns the uinput device path from UINPUT_PATH env var or default.
func UinputPath() string {
	if path := os.Getenv("UINPUT_PATH"); path != "" {
		return path
	}
	return DefaultUinputPath
}

// ScreenSize returns the target resolution from SCREEN_WIDTH / SCREEN_HEIGHT
// env vars, falling back to the provided defaults for any that is unset or
// not a positive integer.
func ScreenSize(defaultWidth, defaultHeight int) (int, int) {
	width := envInt("SCREEN_WIDTH", defaultWidth)
	height := envInt("SCREEN_HEIGHT", defaultHeight)
	return width, height
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
