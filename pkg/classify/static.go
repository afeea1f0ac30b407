package classify

import "context"

// StaticSource replays a fixed slice of frames, then reports
// ErrSourceClosed. It exists for tests; the live source is infinite.
type StaticSource struct {
	labels []string
	frames []Frame
	pos    int
}

// NewStaticSource creates a replay source over the given frames.
func NewStaticSource(labels []string, frames []Frame) *StaticSource {
	return &StaticSource{labels: labels, frames: frames}
}

// Labels returns the configured label set.
func (s *StaticSource) Labels() []string {
	return s.labels
}

// Next returns the next recorded frame in order.
func (s *StaticSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if s.pos >= len(s.frames) {
		return Frame{}, ErrSourceClosed
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}
