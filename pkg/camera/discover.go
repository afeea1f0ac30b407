package camera

import "gocv.io/x/gocv"

// DefaultMaxPorts is how many device ports Discover probes.
const DefaultMaxPorts = 5

// Discover probes camera ports 0..maxPorts-1 and returns the ids that
// opened and delivered a frame. Probing is slow (each dead port has to
// time out), so it runs once at startup.
func Discover(maxPorts int) []int {
	if maxPorts <= 0 {
		maxPorts = DefaultMaxPorts
	}

	var ports []int
	for port := 0; port < maxPorts; port++ {
		cap, err := gocv.OpenVideoCapture(port)
		if err != nil || !cap.IsOpened() {
			if cap != nil {
				cap.Close()
			}
			continue
		}

		frame := gocv.NewMat()
		if ok := cap.Read(&frame); ok && !frame.Empty() {
			ports = append(ports, port)
		}
		frame.Close()
		cap.Close()
	}
	return ports
}
