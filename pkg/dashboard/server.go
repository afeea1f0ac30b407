// Package dashboard provides a local operator view of a billing
// session: current cart, recent confirmations and a live websocket
// event feed. It is read-only; the CheckoutUI stays the system of
// record for what was actually billed.
package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/smartgrocery/autobill/pkg/billing"
	"github.com/smartgrocery/autobill/pkg/hub"
)

const maxEvents = 200

// Status is the session snapshot served at /api/status.
type Status struct {
	Session   string   `json:"session"`
	Labels    []string `json:"labels"`
	Frames    uint64   `json:"frames"`
	LastLabel string   `json:"last_label"`
	LastScore float64  `json:"last_score"`
	CartTotal float64  `json:"cart_total"`
	Confirmed int      `json:"confirmed"`
	StartedAt string   `json:"started_at"`
}

// Event is one confirmation pushed to /ws/events and listed at
// /api/events.
type Event struct {
	Time      string  `json:"time"`
	Label     string  `json:"label"`
	ItemID    int     `json:"item_id"`
	Taken     int     `json:"taken"`
	Payable   float64 `json:"payable"`
	Published bool    `json:"published"`
	Error     string  `json:"error,omitempty"`
}

// Server is the dashboard web server. The session pushes state in via
// RecordFrame and RecordConfirmation; handlers only ever read copies,
// so the billing loop itself stays single-owner and lock-free.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	mu     sync.RWMutex
	status Status
	cart   []billing.Line
	events []Event

	eventsHub *hub.Hub
}

// NewServer creates a dashboard for the given session identity.
func NewServer(port, sessionID string, labels []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "dashboard")

	s := &Server{
		port:   port,
		logger: logger,
		status: Status{
			Session:   sessionID,
			Labels:    labels,
			StartedAt: time.Now().Format(time.RFC3339),
		},
		eventsHub: hub.New("events", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "AutoBill Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for a locally served UI during development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/cart", s.handleCart)
	api.Get("/events", s.handleEvents)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start starts the web server. Blocks.
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "addr", "http://localhost:"+s.port)
	go s.eventsHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("dashboard server failed", "error", err)
		}
	}()
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// RecordFrame updates the last-detection state. Called from the
// session goroutine on every classified frame.
func (s *Server) RecordFrame(label string, score float64) {
	s.mu.Lock()
	s.status.Frames++
	s.status.LastLabel = label
	s.status.LastScore = score
	s.mu.Unlock()
}

// RecordConfirmation updates the cart snapshot and broadcasts the
// event. Called from the session goroutine after every confirmation.
func (s *Server) RecordConfirmation(line billing.Line, cart []billing.Line, publishErr error) {
	event := Event{
		Time:      time.Now().Format("15:04:05"),
		Label:     line.Name,
		ItemID:    line.ID,
		Taken:     line.Taken,
		Payable:   line.Payable,
		Published: publishErr == nil,
	}
	if publishErr != nil {
		event.Error = publishErr.Error()
	}

	s.mu.Lock()
	s.cart = cart
	s.status.Confirmed++
	s.status.CartTotal = 0
	for _, l := range cart {
		s.status.CartTotal += l.Payable
	}
	s.events = append(s.events, event)
	if len(s.events) > maxEvents {
		s.events = s.events[1:]
	}
	s.mu.Unlock()

	s.eventsHub.BroadcastJSON(event)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(s.status)
}

func (s *Server) handleCart(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return c.JSON([]billing.Line{})
	}
	return c.JSON(s.cart)
}

func (s *Server) handleEvents(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.events == nil {
		return c.JSON([]Event{})
	}
	return c.JSON(s.events)
}

// handleEventsWS serves the live confirmation feed.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	client := hub.NewClient(s.eventsHub, c)
	client.Run()
}
