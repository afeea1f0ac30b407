package billing

import "time"

// Pacer caps how often the loop consumes a frame from the
// classification source. It is pure pacing: no queue, no dropped
// frames, it only slows consumption down to the configured interval.
//
// Call Wait before handling a frame and Advance after, whether or not
// the frame carried usable classification data.
type Pacer struct {
	interval time.Duration
	next     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer creates a pacer for the given inter-frame interval.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Wait blocks until the next frame is allowed.
func (p *Pacer) Wait() {
	if now := p.now(); now.Before(p.next) {
		p.sleep(p.next.Sub(now))
	}
}

// Advance schedules the next allowed frame one interval from now.
func (p *Pacer) Advance() {
	p.next = p.now().Add(p.interval)
}
