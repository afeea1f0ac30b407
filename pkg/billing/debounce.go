package billing

import "time"

// Debouncer decides, frame by frame, whether a detection is a
// deliberate item presentation or transient noise.
//
// It is a two-state machine. Idle: no label tracked, streak 0.
// Tracking: counting consecutive qualifying frames for one label. A
// confirmation requires both a long enough streak and an elapsed
// cooldown since the previous confirmation; firing resets the machine
// to Idle so one sustained presentation bills exactly one unit.
type Debouncer struct {
	threshold    float64
	streakFrames int
	cooldown     time.Duration

	current       string
	streak        int
	lastConfirmed time.Time

	now func() time.Time
}

// NewDebouncer creates a debouncer from the config.
func NewDebouncer(cfg Config) *Debouncer {
	return &Debouncer{
		threshold:    cfg.Threshold,
		streakFrames: cfg.StreakFrames,
		cooldown:     cfg.Cooldown,
		now:          time.Now,
	}
}

// Observe feeds one frame's best label and score through the state
// machine. It returns the confirmed label and true when this frame
// completes a confirmation.
func (d *Debouncer) Observe(label string, score float64) (string, bool) {
	if score < d.threshold {
		// A single weak frame cancels all progress, even mid-streak.
		d.current = ""
		d.streak = 0
		return "", false
	}

	if label == d.current {
		d.streak++
	} else {
		// Switching labels restarts the streak, partial progress
		// never carries over.
		d.current = label
		d.streak = 1
	}

	if d.streak < d.streakFrames {
		return "", false
	}
	if d.now().Sub(d.lastConfirmed) < d.cooldown {
		return "", false
	}

	confirmed := d.current
	d.lastConfirmed = d.now()
	d.current = ""
	d.streak = 0
	return confirmed, true
}

// Tracking returns the currently tracked label and streak length.
// An empty label means the machine is idle.
func (d *Debouncer) Tracking() (string, int) {
	return d.current, d.streak
}

// LastConfirmed returns when the last confirmation fired. The zero
// time means never.
func (d *Debouncer) LastConfirmed() time.Time {
	return d.lastConfirmed
}
