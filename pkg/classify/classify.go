// Package classify produces per-frame label confidence scores from a
// camera feed. The model, the label set and the camera are fixed for
// the lifetime of a run.
package classify

import (
	"context"
	"errors"
)

// ErrSourceClosed is returned by Next once a source cannot produce
// further frames. The live camera source never returns it; finite test
// sources do.
var ErrSourceClosed = errors.New("classify: source closed")

// Frame is one camera frame's classification result.
// Scores maps each model label to a confidence in [0,1]. A nil or empty
// map means the frame carried no usable classification and must be
// skipped without any state transition downstream.
type Frame struct {
	Scores map[string]float64
}

// HasClassification reports whether the frame carries scores.
func (f Frame) HasClassification() bool {
	return len(f.Scores) > 0
}

// Source is a pull-based, non-restartable stream of classification
// frames. Next blocks until a frame is available or ctx is cancelled.
// The stream is conceptually infinite; callers must not assume it
// terminates.
type Source interface {
	// Next returns the next frame. A frame without classification
	// payload is returned with nil error and skipped by the caller.
	Next(ctx context.Context) (Frame, error)

	// Labels returns the model's label set in model order.
	Labels() []string
}

// BestLabel selects the label with the maximum confidence from the
// fixed label set. Ties break to the first label in label-set order;
// labels missing from scores count as 0.0. This mirrors how the model
// runner reports results and keeps the pick deterministic.
func BestLabel(labels []string, scores map[string]float64) (string, float64) {
	best := ""
	bestScore := 0.0
	for _, label := range labels {
		score := scores[label]
		if best == "" || score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best, bestScore
}
