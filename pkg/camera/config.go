// Package camera wraps a local USB camera behind gocv.
// It handles device discovery, capture configuration and per-frame
// JPEG readout for the classification pipeline.
package camera

import "fmt"

// Config holds capture configuration applied when a device is opened.
type Config struct {
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS requested from the driver
	Quality   int `json:"quality"`   // JPEG quality 1-100
}

// DefaultConfig returns the recommended capture configuration.
// 640x480 keeps inference latency low on a Raspberry Pi.
func DefaultConfig() Config {
	return Config{
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   85,
	}
}

// Validate checks config values and returns a list of problems.
func (c Config) Validate() []string {
	var errors []string

	if c.Width <= 0 || c.Height <= 0 {
		errors = append(errors, fmt.Sprintf("invalid resolution %dx%d", c.Width, c.Height))
	}
	if c.Framerate <= 0 {
		errors = append(errors, fmt.Sprintf("framerate must be positive, got %d", c.Framerate))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, fmt.Sprintf("quality must be 1-100, got %d", c.Quality))
	}

	return errors
}
