package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Device is an open camera producing JPEG frames.
type Device struct {
	id      int
	cap     *gocv.VideoCapture
	frame   gocv.Mat
	quality int
	mu      sync.Mutex
}

// Open opens the camera with the given port id and applies the config.
// The driver may not honor every requested property; Properties reports
// what the camera actually negotiated.
func Open(id int, cfg Config) (*Device, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera: invalid config: %v", errs)
	}

	cap, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", id, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("camera: device %d not opened", id)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	return &Device{
		id:      id,
		cap:     cap,
		frame:   gocv.NewMat(),
		quality: cfg.Quality,
	}, nil
}

// ID returns the device port id.
func (d *Device) ID() int {
	return d.id
}

// Properties returns the negotiated width, height and framerate.
func (d *Device) Properties() (width, height int, fps float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	width = int(d.cap.Get(gocv.VideoCaptureFrameWidth))
	height = int(d.cap.Get(gocv.VideoCaptureFrameHeight))
	fps = d.cap.Get(gocv.VideoCaptureFPS)
	return width, height, fps
}

// ReadJPEG grabs the next frame and encodes it as JPEG.
func (d *Device) ReadJPEG() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ok := d.cap.Read(&d.frame); !ok {
		return nil, fmt.Errorf("camera: device %d read failed", d.id)
	}
	if d.frame.Empty() {
		return nil, fmt.Errorf("camera: device %d returned empty frame", d.id)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, d.frame,
		[]int{gocv.IMWriteJpegQuality, d.quality})
	if err != nil {
		return nil, fmt.Errorf("camera: encode frame: %w", err)
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())
	return jpeg, nil
}

// Close releases the capture device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.Close()
	return d.cap.Close()
}
