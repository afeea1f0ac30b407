// AutoBill - vision-only billing for the Smart Grocery Box.
//
// Runs an image classification model over a USB camera feed and turns
// sustained, high-confidence detections into cart events on the
// CheckoutUI API. No load cell, no GPIO: camera only.
//
// Usage:
//
//	autobill <model.onnx> [camera-id]
//
// Configuration comes from SMART_GROCERY_BOX_* environment variables
// (see internal/config), optionally via a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/smartgrocery/autobill/internal/config"
	"github.com/smartgrocery/autobill/internal/log"
	"github.com/smartgrocery/autobill/pkg/billing"
	"github.com/smartgrocery/autobill/pkg/camera"
	"github.com/smartgrocery/autobill/pkg/checkout"
	"github.com/smartgrocery/autobill/pkg/classify"
	"github.com/smartgrocery/autobill/pkg/dashboard"
	"github.com/smartgrocery/autobill/pkg/journal"
	"github.com/smartgrocery/autobill/pkg/pricing"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: autobill <model.onnx> [camera-id]")
		os.Exit(2)
	}

	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	env := config.Load()
	log.Init(env.LogLevel)
	logger := log.L()

	modelPath := resolveModelPath(os.Args[1])

	modelCfg := classify.DefaultModelConfig()
	modelCfg.ModelPath = modelPath
	modelCfg.LabelsPath = classify.DeriveLabelsPath(modelPath)

	model, err := classify.NewModel(modelCfg)
	if err != nil {
		logger.Error("failed to load model", "path", modelPath, "error", err)
		os.Exit(1)
	}

	camID, err := selectCamera(os.Args[2:])
	if err != nil {
		logger.Error("no usable camera", "error", err)
		os.Exit(1)
	}

	dev, err := camera.Open(camID, camera.DefaultConfig())
	if err != nil {
		logger.Error("failed to open camera", "id", camID, "error", err)
		os.Exit(1)
	}

	source := classify.NewCameraSource(dev, model, logger)
	defer source.Close()

	prices := pricing.Load(env.PricesFile, model.Labels(), logger)

	publisher, err := checkout.NewClient(env.APIURL, logger)
	if err != nil {
		logger.Error("invalid billing endpoint", "error", err)
		os.Exit(1)
	}

	cfg := billing.Config{
		Threshold:     env.Threshold,
		StreakFrames:  env.StreakFrames,
		Cooldown:      env.Cooldown,
		Unit:          env.Unit,
		FrameInterval: env.FrameInterval,
	}

	session, err := billing.NewSession(cfg, source, prices, publisher, logger)
	if err != nil {
		logger.Error("invalid billing config", "error", err)
		os.Exit(1)
	}

	logger.Info("autobill starting",
		"model", modelPath,
		"camera", camID,
		"api_url", env.APIURL,
		"labels", model.Labels(),
		"session", session.ID())

	// Optional confirmation journal.
	var jrnl *journal.Journal
	if env.JournalPath != "" {
		jrnl, err = journal.Open(env.JournalPath)
		if err != nil {
			logger.Error("journal disabled", "path", env.JournalPath, "error", err)
			jrnl = nil
		} else {
			defer jrnl.Close()
		}
	}

	// Optional local dashboard.
	var dash *dashboard.Server
	if env.DashboardPort != "" {
		dash = dashboard.NewServer(env.DashboardPort, session.ID(), model.Labels(), logger)
		dash.StartAsync()
		session.OnFrame = dash.RecordFrame
	}

	session.OnConfirm = func(line billing.Line, publishErr error) {
		if jrnl != nil {
			entry := journal.Entry{
				Session:   session.ID(),
				ItemID:    line.ID,
				Label:     line.Name,
				Taken:     line.Taken,
				Payable:   line.Payable,
				Published: publishErr == nil,
			}
			if publishErr != nil {
				entry.Error = publishErr.Error()
			}
			if _, err := jrnl.Record(entry); err != nil {
				logger.Warn("journal write failed", "error", err)
			}
		}
		if dash != nil {
			dash.RecordConfirmation(line, session.Cart().Lines(), publishErr)
		}
	}

	// Ctrl+C ends the loop between frames; unpublished events are lost.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("session ended", "error", err)
		os.Exit(1)
	}

	if dash != nil {
		dash.Shutdown()
	}

	printCartSummary(session)
}

// resolveModelPath tries the path as given, then relative to the
// executable directory, matching how the model usually ships next to
// the binary on the box.
func resolveModelPath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// selectCamera picks the camera id from the CLI argument if present,
// otherwise discovers connected webcams and uses the first.
func selectCamera(args []string) (int, error) {
	if len(args) >= 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid camera id %q", args[0])
		}
		return id, nil
	}

	ports := camera.Discover(camera.DefaultMaxPorts)
	if len(ports) == 0 {
		return 0, fmt.Errorf("no webcams found, check your USB camera and try again")
	}
	if len(ports) > 1 {
		log.Info("multiple cameras found, using first", "ports", ports)
	}
	return ports[0], nil
}

// printCartSummary prints the final session tally on exit.
func printCartSummary(session *billing.Session) {
	lines := session.Cart().Lines()
	if len(lines) == 0 {
		fmt.Println("No items billed this session.")
		return
	}

	fmt.Println("Session summary:")
	for _, line := range lines {
		fmt.Printf("  %-20s x%-3d %8.2f\n", line.Name, line.Taken, line.Payable)
	}
	fmt.Printf("  %-20s      %8.2f\n", "total", session.Cart().Total())
}
