package billing

import (
	"testing"
	"time"
)

// obs is one observed frame for table tests.
type obs struct {
	label string
	score float64
}

func newTestDebouncer(cfg Config, clock *fakeClock) *Debouncer {
	d := NewDebouncer(cfg)
	if clock != nil {
		d.now = clock.Now
	}
	return d
}

// fakeClock is a manually advanced clock for cooldown tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestDebouncer_WeakFrameResets(t *testing.T) {
	tests := []struct {
		name   string
		frames []obs
	}{
		{
			name: "single weak frame cancels long streak",
			frames: []obs{
				{"apple", 0.95}, {"apple", 0.95}, {"apple", 0.95},
				{"apple", 0.95}, {"apple", 0.95}, {"apple", 0.40},
			},
		},
		{
			name: "weak frame of a different label also resets",
			frames: []obs{
				{"apple", 0.95}, {"apple", 0.95}, {"banana", 0.10},
			},
		},
		{
			name: "score just below threshold counts as weak",
			frames: []obs{
				{"apple", 0.95}, {"apple", 0.8999},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.StreakFrames = 100 // never confirm in this test
			d := newTestDebouncer(cfg, nil)

			for _, f := range tt.frames {
				d.Observe(f.label, f.score)
			}

			label, streak := d.Tracking()
			if label != "" || streak != 0 {
				t.Errorf("expected idle after weak frame, got label=%q streak=%d", label, streak)
			}
		})
	}
}

func TestDebouncer_LabelSwitchRestartsStreak(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StreakFrames = 100
	d := newTestDebouncer(cfg, nil)

	d.Observe("apple", 0.95)
	d.Observe("apple", 0.95)
	d.Observe("apple", 0.95)
	d.Observe("banana", 0.95)

	label, streak := d.Tracking()
	if label != "banana" {
		t.Errorf("expected tracking banana, got %q", label)
	}
	if streak != 1 {
		t.Errorf("streak must restart at 1 on label switch, got %d", streak)
	}
}

func TestDebouncer_ScenarioA_ThreeStrongFramesConfirmOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 0.90
	cfg.StreakFrames = 3
	cfg.Cooldown = 0
	d := newTestDebouncer(cfg, nil)

	var confirmations []string
	for i := 0; i < 3; i++ {
		if label, ok := d.Observe("apple", 0.95); ok {
			confirmations = append(confirmations, label)
		}
	}

	if len(confirmations) != 1 || confirmations[0] != "apple" {
		t.Fatalf("expected exactly one apple confirmation, got %v", confirmations)
	}

	// Firing must force a return to idle.
	label, streak := d.Tracking()
	if label != "" || streak != 0 {
		t.Errorf("expected idle after confirmation, got label=%q streak=%d", label, streak)
	}
}

func TestDebouncer_ScenarioB_ResetMidSequence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 0.90
	cfg.StreakFrames = 3
	cfg.Cooldown = 0
	d := newTestDebouncer(cfg, nil)

	frames := []obs{
		{"apple", 0.95},
		{"apple", 0.40}, // resets
		{"apple", 0.95},
		{"apple", 0.95},
		{"apple", 0.95}, // confirmation fires here
	}

	confirmedAt := -1
	total := 0
	for i, f := range frames {
		if _, ok := d.Observe(f.label, f.score); ok {
			confirmedAt = i
			total++
		}
	}

	if total != 1 {
		t.Fatalf("expected exactly 1 confirmation, got %d", total)
	}
	if confirmedAt != 4 {
		t.Errorf("confirmation must fire on frame 5 (index 4), fired at index %d", confirmedAt)
	}
}

func TestDebouncer_ScenarioC_CooldownSuppresses(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}

	cfg := DefaultConfig()
	cfg.StreakFrames = 1
	cfg.Cooldown = 2 * time.Second
	d := newTestDebouncer(cfg, clock)

	if _, ok := d.Observe("apple", 0.95); !ok {
		t.Fatal("first qualifying frame should confirm with streak 1")
	}

	// Half a second later the streak condition holds again, but the
	// cooldown has not elapsed.
	clock.Advance(500 * time.Millisecond)
	if _, ok := d.Observe("apple", 0.95); ok {
		t.Error("confirmation within cooldown must be suppressed")
	}

	clock.Advance(2 * time.Second)
	if _, ok := d.Observe("apple", 0.95); !ok {
		t.Error("confirmation after cooldown elapsed must fire")
	}
}

func TestDebouncer_CooldownAppliesAcrossLabels(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}

	cfg := DefaultConfig()
	cfg.StreakFrames = 1
	cfg.Cooldown = 2 * time.Second
	d := newTestDebouncer(cfg, clock)

	if _, ok := d.Observe("apple", 0.95); !ok {
		t.Fatal("expected first confirmation")
	}

	clock.Advance(time.Second)
	if _, ok := d.Observe("banana", 0.95); ok {
		t.Error("cooldown is global, a different label must also be suppressed")
	}
}

func TestDebouncer_SustainedStreakBillsOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StreakFrames = 3
	cfg.Cooldown = 0
	d := newTestDebouncer(cfg, nil)

	// 9 uninterrupted strong frames: the machine confirms, drops to
	// idle, and has to rebuild the full streak each time.
	total := 0
	for i := 0; i < 9; i++ {
		if _, ok := d.Observe("apple", 0.95); ok {
			total++
		}
	}

	if total != 3 {
		t.Errorf("9 frames at streak 3 should confirm exactly 3 times, got %d", total)
	}
}

func TestDebouncer_FirstConfirmationNeedsNoWarmup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StreakFrames = 1
	cfg.Cooldown = time.Hour
	d := newTestDebouncer(cfg, nil)

	// lastConfirmed starts at the zero time, so the first
	// confirmation is never blocked by the cooldown.
	if _, ok := d.Observe("apple", 0.95); !ok {
		t.Error("first confirmation must not be blocked by cooldown")
	}
}
