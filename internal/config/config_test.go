package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	env := Load()

	if env.APIURL != "http://localhost:3000/product" {
		t.Errorf("APIURL default = %q", env.APIURL)
	}
	if env.Threshold != 0.90 {
		t.Errorf("Threshold default = %v", env.Threshold)
	}
	if env.StreakFrames != 8 {
		t.Errorf("StreakFrames default = %d", env.StreakFrames)
	}
	if env.Cooldown != 2*time.Second {
		t.Errorf("Cooldown default = %v", env.Cooldown)
	}
	if env.Unit != "pcs" {
		t.Errorf("Unit default = %q", env.Unit)
	}
	if env.PricesFile != "prices.json" {
		t.Errorf("PricesFile default = %q", env.PricesFile)
	}
	if env.FrameInterval != 100*time.Millisecond {
		t.Errorf("FrameInterval default = %v", env.FrameInterval)
	}
	if env.DashboardPort != "" || env.JournalPath != "" {
		t.Error("dashboard and journal must default to disabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SMART_GROCERY_BOX_API_URL", "http://checkout:3000/product")
	t.Setenv("SMART_GROCERY_BOX_THRESHOLD", "0.75")
	t.Setenv("SMART_GROCERY_BOX_STREAK_FRAMES", "12")
	t.Setenv("SMART_GROCERY_BOX_COOLDOWN_SECONDS", "0.5")
	t.Setenv("SMART_GROCERY_BOX_UNIT", "kg")
	t.Setenv("SMART_GROCERY_BOX_FRAME_INTERVAL_MS", "50")

	env := Load()

	if env.APIURL != "http://checkout:3000/product" {
		t.Errorf("APIURL = %q", env.APIURL)
	}
	if env.Threshold != 0.75 {
		t.Errorf("Threshold = %v", env.Threshold)
	}
	if env.StreakFrames != 12 {
		t.Errorf("StreakFrames = %d", env.StreakFrames)
	}
	if env.Cooldown != 500*time.Millisecond {
		t.Errorf("Cooldown = %v", env.Cooldown)
	}
	if env.Unit != "kg" {
		t.Errorf("Unit = %q", env.Unit)
	}
	if env.FrameInterval != 50*time.Millisecond {
		t.Errorf("FrameInterval = %v", env.FrameInterval)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SMART_GROCERY_BOX_THRESHOLD", "not-a-number")
	t.Setenv("SMART_GROCERY_BOX_STREAK_FRAMES", "eight")

	env := Load()

	if env.Threshold != 0.90 {
		t.Errorf("malformed threshold must fall back, got %v", env.Threshold)
	}
	if env.StreakFrames != 8 {
		t.Errorf("malformed streak must fall back, got %d", env.StreakFrames)
	}
}
