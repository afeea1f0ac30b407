package billing

import (
	"fmt"
	"time"
)

// Config holds all tunable parameters for detection debouncing.
type Config struct {
	// Threshold is the minimum confidence for a frame to count toward
	// a streak. One frame below it cancels any streak in progress.
	Threshold float64

	// StreakFrames is how many consecutive qualifying frames of the
	// same label are needed before an item is billed.
	StreakFrames int

	// Cooldown is the minimum wall-clock gap between two
	// confirmations, regardless of label.
	Cooldown time.Duration

	// Unit is the quantity unit stamped on each cart line.
	Unit string

	// FrameInterval caps how often the loop pulls a frame from the
	// classification source.
	FrameInterval time.Duration
}

// DefaultConfig returns the recommended debouncing configuration.
// Eight frames at ~10 fps means an item has to be held in view for
// close to a second before it is billed.
func DefaultConfig() Config {
	return Config{
		Threshold:     0.90,
		StreakFrames:  8,
		Cooldown:      2 * time.Second,
		Unit:          "pcs",
		FrameInterval: 100 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("billing: threshold must be in [0,1], got %v", c.Threshold)
	}
	if c.StreakFrames < 1 {
		return fmt.Errorf("billing: streak frames must be positive, got %d", c.StreakFrames)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("billing: cooldown must be non-negative, got %v", c.Cooldown)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("billing: frame interval must be positive, got %v", c.FrameInterval)
	}
	return nil
}
