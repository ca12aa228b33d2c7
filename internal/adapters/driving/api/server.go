package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Services aggregates the driving ports served over HTTP.
type Services struct {
	Search   driving.SearchService
	Board    driving.BoardService
	Projects driving.ProjectService
	Tasks    driving.TaskService
	Activity driving.ActivityService
	Calendar driving.CalendarService
	Agent    driving.AgentService
}

// Validate ensures every service is set.
func (s *Services) Validate() error {
	switch {
	case s.Search == nil:
		return errors.New("api: search service is required")
	case s.Board == nil, s.Projects == nil, s.Tasks == nil:
		return errors.New("api: board services are required")
	case s.Activity == nil:
		return errors.New("api: activity service is required")
	case s.Calendar == nil:
		return errors.New("api: calendar service is required")
	case s.Agent == nil:
		return errors.New("api: agent service is required")
	}
	return nil
}

// Config holds HTTP server configuration.
type Config struct {
	Addr string

	// RateLimit is requests per client per minute. Zero disables it.
	RateLimit int

	// TrustProxy keys the rate limiter on proxy headers instead of RemoteAddr.
	TrustProxy bool

	// DefaultSearchLimit applies when a search request has no limit.
	DefaultSearchLimit int

	Version string
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	api    huma.API
	router chi.Router
}

// NewServer builds the router and registers every route.
func NewServer(cfg Config, svc *Services) (*Server, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	if cfg.DefaultSearchLimit < 1 {
		cfg.DefaultSearchLimit = domain.DefaultSearchLimit
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(RequestLogging)
	router.Use(middleware.Recoverer)
	if cfg.RateLimit > 0 {
		limiter := NewRateLimiter(cfg.RateLimit, time.Minute)
		limiter.TrustProxy = cfg.TrustProxy
		router.Use(limiter.Middleware)
	}

	config := huma.DefaultConfig("Mission Control API", cfg.Version)
	config.Info.Description = "Board, activity, calendar, agent presence and federated search"
	api := humachi.New(router, config)

	registerRoutes(api, cfg, svc)

	return &Server{cfg: cfg, api: api, router: router}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the huma API, for inspecting the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("HTTP API listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func registerRoutes(api huma.API, cfg Config, svc *Services) {
	(&searchHandler{svc: svc.Search, defaultLimit: cfg.DefaultSearchLimit}).register(api)
	(&boardHandler{board: svc.Board, projects: svc.Projects, tasks: svc.Tasks}).register(api)
	(&activityHandler{svc: svc.Activity}).register(api)
	(&calendarHandler{svc: svc.Calendar}).register(api)
	(&agentHandler{svc: svc.Agent}).register(api)
}
