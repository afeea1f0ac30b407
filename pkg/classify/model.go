package classify

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// ModelConfig holds classifier model configuration.
type ModelConfig struct {
	ModelPath   string // Path to ONNX classification model
	LabelsPath  string // Path to labels file (one label per line)
	InputWidth  int    // Model input width
	InputHeight int    // Model input height
}

// DefaultModelConfig returns defaults for a MobileNet-style classifier.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		InputWidth:  224,
		InputHeight: 224,
	}
}

// Model runs a gocv DNN image classifier over JPEG frames.
type Model struct {
	net       gocv.Net
	labels    []string
	inputSize image.Point
	mu        sync.Mutex
}

// NewModel loads the ONNX model and its label list.
func NewModel(cfg ModelConfig) (*Model, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("classify: model file not found: %s", cfg.ModelPath)
	}

	labels, err := LoadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("classify: failed to load model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &Model{
		net:       net,
		labels:    labels,
		inputSize: image.Pt(cfg.InputWidth, cfg.InputHeight),
	}, nil
}

// Labels returns the model's label set in model order.
func (m *Model) Labels() []string {
	return m.labels
}

// Classify runs the model over one JPEG frame and returns the
// per-label confidence scores.
func (m *Model) Classify(jpeg []byte) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("classify: decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("classify: empty image")
	}

	blob := gocv.BlobFromImage(img, 1.0/255.0, m.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")

	output := m.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("classify: read output tensor: %w", err)
	}
	if len(data) < len(m.labels) {
		return nil, fmt.Errorf("classify: output size %d smaller than label set %d",
			len(data), len(m.labels))
	}

	scores := softmax(data[:len(m.labels)])

	result := make(map[string]float64, len(m.labels))
	for i, label := range m.labels {
		result[label] = scores[i]
	}
	return result, nil
}

// Close releases the model resources.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.net.Close()
	return nil
}

// softmax converts raw logits to probabilities. Models exported with a
// softmax head pass through almost unchanged, so applying it
// unconditionally is safe.
func softmax(logits []float32) []float64 {
	maxLogit := logits[0]
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}

	exps := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		exps[i] = math.Exp(float64(v - maxLogit))
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}
