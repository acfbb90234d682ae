package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pagesmith/pagesmith/pkg/assist"
	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/pipeline"
	"github.com/pagesmith/pagesmith/pkg/session"
)

// Config holds server settings.
type Config struct {
	Addr         string
	CanvasWidth  float64
	CanvasHeight float64
	SessionTTL   time.Duration
}

// setDefaults fills zero fields with standard values.
func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.CanvasWidth == 0 {
		c.CanvasWidth = canvas.DefaultCanvasWidth
	}
	if c.CanvasHeight == 0 {
		c.CanvasHeight = canvas.DefaultCanvasHeight
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = session.DefaultTTL
	}
}

// Server is the HTTP API for the page builder.
type Server struct {
	cfg      Config
	sessions session.Store
	runner   *pipeline.Runner
	assist   *assist.Client
	logger   *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Server. The assist client may be nil, in which case
// POST /api/assist reports the feature as unavailable.
func New(cfg Config, sessions session.Store, runner *pipeline.Runner, assistClient *assist.Client, logger *log.Logger) *Server {
	cfg.setDefaults()
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		runner:   runner,
		assist:   assistClient,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/assist", s.handleAssist)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/drop", s.handleDrop)
				r.Post("/select", s.handleSelect)
				r.Post("/region", s.handleSetRegion)
				r.Post("/clear", s.handleClear)
				r.Post("/generate", s.handleGenerate)
				r.Patch("/components/{componentID}", s.handleMoveComponent)
				r.Delete("/components/{componentID}", s.handleDeleteComponent)
			})
		})
	})

	return r
}

// HTTPServer wraps the router in an http.Server with standard timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting server", "addr", s.cfg.Addr)
	return s.HTTPServer().ListenAndServe()
}

// canvasRect returns the configured canvas geometry at the origin.
func (s *Server) canvasRect() canvas.Rect {
	return canvas.Rect{Width: s.cfg.CanvasWidth, Height: s.cfg.CanvasHeight}
}

// sessionLock returns the mutex serializing mutations for one session.
func (s *Server) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// releaseLock drops the mutex entry for a deleted session.
func (s *Server) releaseLock(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, sessionID)
}
