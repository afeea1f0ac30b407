package classify

import (
	"context"
	"log/slog"

	"github.com/smartgrocery/autobill/pkg/camera"
)

// CameraSource feeds camera frames through the classifier model.
// It implements Source: one Next call captures one frame and runs one
// forward pass. The stream never ends on its own; capture or inference
// hiccups surface as payload-less frames, not errors.
type CameraSource struct {
	dev    *camera.Device
	model  *Model
	logger *slog.Logger
}

// NewCameraSource creates a live classification source.
func NewCameraSource(dev *camera.Device, model *Model, logger *slog.Logger) *CameraSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CameraSource{
		dev:    dev,
		model:  model,
		logger: logger.With("component", "classify.source"),
	}
}

// Labels returns the model's label set in model order.
func (s *CameraSource) Labels() []string {
	return s.model.Labels()
}

// Next captures and classifies one frame. Blocks on the camera.
func (s *CameraSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	jpeg, err := s.dev.ReadJPEG()
	if err != nil {
		s.logger.Debug("frame capture failed", "error", err)
		return Frame{}, nil
	}

	scores, err := s.model.Classify(jpeg)
	if err != nil {
		s.logger.Debug("inference failed", "error", err)
		return Frame{}, nil
	}

	return Frame{Scores: scores}, nil
}

// Close releases the camera and the model.
func (s *CameraSource) Close() error {
	err := s.dev.Close()
	if merr := s.model.Close(); err == nil {
		err = merr
	}
	return err
}
