package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartgrocery/autobill/pkg/classify"
)

// Session owns all mutable billing state for one run: the debounce
// state machine, the cart and the frame pacer. Everything is mutated
// from the single goroutine running Run; observers get copies through
// the callback fields and must not reach back in.
type Session struct {
	id     string
	cfg    Config
	source classify.Source
	labels []string

	deb       *Debouncer
	cart      *Cart
	pacer     *Pacer
	publisher Publisher

	frames uint64
	logger *slog.Logger

	// OnFrame is called after every classified frame with the best
	// label and score, before the debouncer sees it.
	OnFrame func(label string, score float64)

	// OnConfirm is called after every confirmation with the updated
	// line and the publish outcome (nil on success).
	OnConfirm func(line Line, publishErr error)
}

// NewSession wires a session from its collaborators.
func NewSession(cfg Config, source classify.Source, prices PriceTable, publisher Publisher, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New().String()
	labels := source.Labels()

	return &Session{
		id:        id,
		cfg:       cfg,
		source:    source,
		labels:    labels,
		deb:       NewDebouncer(cfg),
		cart:      NewCart(labels, prices, cfg.Unit),
		pacer:     NewPacer(cfg.FrameInterval),
		publisher: publisher,
		logger:    logger.With("component", "billing.session", "session", id),
	}, nil
}

// ID returns the session's run identifier.
func (s *Session) ID() string {
	return s.id
}

// Cart exposes the session cart. Only safe to read before Run starts
// or after it returns.
func (s *Session) Cart() *Cart {
	return s.cart
}

// Frames returns how many classified frames the session consumed.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Run drives the pipeline until ctx is cancelled or the source ends.
// One iteration handles exactly one frame: pace, pull, extract best
// label, debounce, and on confirmation bill and publish. Cancellation
// is only observed between frames; there is no flush on exit.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started",
		"labels", len(s.labels),
		"threshold", s.cfg.Threshold,
		"streak_frames", s.cfg.StreakFrames,
		"cooldown", s.cfg.Cooldown)

	for {
		frame, err := s.source.Next(ctx)
		if err != nil {
			if errors.Is(err, classify.ErrSourceClosed) {
				s.logger.Info("classification source closed")
				return nil
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			s.logger.Error("classification source failed", "error", err)
			return err
		}

		s.pacer.Wait()

		// A frame without classification payload advances the pacing
		// interval but causes no state transition.
		if !frame.HasClassification() {
			s.pacer.Advance()
			continue
		}

		label, score := classify.BestLabel(s.labels, frame.Scores)
		s.frames++
		s.logger.Debug("frame", "label", label, "score", score)
		if s.OnFrame != nil {
			s.OnFrame(label, score)
		}

		if confirmed, ok := s.deb.Observe(label, score); ok {
			s.confirm(ctx, confirmed)
		}

		s.pacer.Advance()
	}
}

// confirm bills one unit of the label and publishes the updated line.
// A failed publish is logged and swallowed: the cart keeps the unit,
// delivery is at-most-once and the endpoint may silently diverge.
func (s *Session) confirm(ctx context.Context, label string) {
	line := s.cart.Confirm(label)

	err := s.publisher.Publish(ctx, line)
	if err != nil {
		s.logger.Error("publish failed, cart state stands",
			"label", line.Name, "taken", line.Taken, "error", err)
	} else {
		s.logger.Info("item billed",
			"label", line.Name, "id", line.ID, "taken", line.Taken,
			"payable", line.Payable)
	}

	if s.OnConfirm != nil {
		s.OnConfirm(line, err)
	}
}
