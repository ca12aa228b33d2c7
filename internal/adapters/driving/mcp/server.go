package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mission-control/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const instructions = `Mission Control tracks an agent workspace: a kanban board of projects
and tasks, an activity log, a weekly calendar and markdown memory notes.
Use the search tool to find anything across them and log_activity to
record what you did. Read mission-control://board for the board and
mission-control://calendar/current for this week.`

// Server is the Mission Control MCP server.
type Server struct {
	ports        *Ports
	server       *mcp.Server
	defaultLimit int
}

// NewServer creates a new MCP server with the given ports.
// defaultLimit applies to searches that pass no limit.
func NewServer(ports *Ports, defaultLimit int) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if defaultLimit < 1 {
		defaultLimit = 20
	}

	impl := &mcp.Implementation{
		Name:    "mission-control",
		Version: Version,
	}
	opts := &mcp.ServerOptions{Instructions: instructions}

	s := &Server{
		ports:        ports,
		server:       mcp.NewServer(impl, opts),
		defaultLimit: defaultLimit,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP routes: the streamable transport at /mcp and a
// liveness probe at /healthz. Any other path is also served by the transport.
func (s *Server) Handler() http.Handler {
	stream := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/mcp", stream)
	r.NotFound(stream.ServeHTTP)
	return r
}

// RunHTTP serves Handler on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
