// Camera test - verify a camera works before running autobill.
//
// Probes the given camera (or discovers one), reports the negotiated
// properties and measures the achievable capture rate for a few
// seconds. No window, no model: capture only.
//
// Usage:
//
//	camera-test [camera-id]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/smartgrocery/autobill/pkg/camera"
)

func main() {
	fmt.Println("📷 AutoBill Camera Test")
	fmt.Println("=======================")

	var id int
	if len(os.Args) >= 2 {
		parsed, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid camera id %q\n", os.Args[1])
			os.Exit(2)
		}
		id = parsed
	} else {
		fmt.Print("Discovering cameras... ")
		ports := camera.Discover(camera.DefaultMaxPorts)
		if len(ports) == 0 {
			fmt.Println("❌ none found")
			os.Exit(1)
		}
		fmt.Printf("found %v\n", ports)
		id = ports[0]
	}

	fmt.Printf("Testing camera %d...\n", id)

	dev, err := camera.Open(id, camera.DefaultConfig())
	if err != nil {
		fmt.Printf("❌ Cannot open camera %d: %v\n", id, err)
		os.Exit(1)
	}
	defer dev.Close()

	width, height, fps := dev.Properties()
	fmt.Printf("✅ Camera %d opened\n", id)
	fmt.Printf("   Resolution: %dx%d\n", width, height)
	fmt.Printf("   Driver FPS: %.1f\n", fps)

	jpeg, err := dev.ReadJPEG()
	if err != nil {
		fmt.Printf("❌ Cannot read frame: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Captured frame (%d KB)\n", len(jpeg)/1024)

	// Measure real throughput for a few seconds.
	fmt.Println("Measuring capture rate for 3s...")
	frames := 0
	start := time.Now()
	for time.Since(start) < 3*time.Second {
		if _, err := dev.ReadJPEG(); err != nil {
			fmt.Printf("❌ Lost camera after %d frames: %v\n", frames, err)
			os.Exit(1)
		}
		frames++
	}
	elapsed := time.Since(start).Seconds()
	fmt.Printf("✅ %d frames in %.1fs (%.1f fps)\n", frames, elapsed, float64(frames)/elapsed)
	fmt.Println("Camera is ready for autobill.")
}
