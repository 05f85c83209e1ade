package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaminalder/codex-reversi/internal/app"
)

type Option func(h *handlers)

// WithHeartbeat sets the idle keep-alive interval for SSE and WebSocket streams.
func WithHeartbeat(d time.Duration) Option {
	return func(h *handlers) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	h := &handlers{svc: s, tpl: loadTemplates(), heartbeat: defaultHeartbeat}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Get("/state", h.state)
		r.Post("/join", h.join)
		r.Post("/play", h.play)
		r.Post("/auto", h.auto)
		r.Post("/reset", h.reset)
		r.Post("/hints", h.toggleHints)
		r.Get("/events", h.events)
		r.Get("/ws", h.ws)
	})
	return r
}
