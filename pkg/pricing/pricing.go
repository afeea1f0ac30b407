// Package pricing loads the label to unit-price table used to price
// cart lines. The table is read once at startup; edits require a
// restart to take effect.
package pricing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// DefaultPrice is assumed for every label when no prices file exists
// yet. The written template makes the placeholder obvious to the
// operator.
const DefaultPrice = 1.0

// Table maps labels to unit prices.
type Table struct {
	prices map[string]float64
}

// Price returns the unit price for a label. Labels absent from the
// table price at 0.0, matching the billing contract for unknown items.
func (t *Table) Price(label string) float64 {
	return t.prices[label]
}

// Len returns how many labels the table carries.
func (t *Table) Len() int {
	return len(t.prices)
}

// Load reads the prices file for the given label set.
//
// Missing file: a template with DefaultPrice per label is written for
// the operator to edit, and those defaults are used for this run.
// Unreadable or malformed file: defaults are used, the file is left
// alone. Keys outside the label set are ignored. Load never fails the
// startup; pricing problems only ever cost money, not uptime.
func Load(path string, labels []string, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "pricing")

	prices := make(map[string]float64, len(labels))
	for _, label := range labels {
		prices[label] = DefaultPrice
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeTemplate(path, prices); werr != nil {
			logger.Warn("could not write prices template", "path", path, "error", werr)
		} else {
			logger.Info("created prices template, edit it to set real prices", "path", path)
		}
		return &Table{prices: prices}
	}
	if err != nil {
		logger.Warn("could not read prices file, using defaults", "path", path, "error", err)
		return &Table{prices: prices}
	}

	var loaded map[string]float64
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("could not parse prices file, using defaults", "path", path, "error", err)
		return &Table{prices: prices}
	}

	for label, price := range loaded {
		if _, known := prices[label]; known {
			prices[label] = price
		}
	}
	logger.Info("loaded prices", "path", path, "labels", len(prices))
	return &Table{prices: prices}
}

func writeTemplate(path string, prices map[string]float64) error {
	data, err := json.MarshalIndent(prices, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
