package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API serving the board, activity log, calendar, agent status
and federated search under /api. The OpenAPI document is served at
/openapi.json and interactive docs at /docs.

The listen address and rate limit come from settings (server.addr,
server.rate_limit) unless --addr is given.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := apiConfig()
	if err != nil {
		return err
	}

	server, err := api.NewServer(cfg, &api.Services{
		Search:   searchService,
		Board:    boardService,
		Projects: projectService,
		Tasks:    taskService,
		Activity: activityService,
		Calendar: calendarService,
		Agent:    agentService,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Mission Control API listening on %s\n", cfg.Addr)
	return server.ListenAndServe(ctx)
}

// apiConfig reads server settings, letting --addr override the address.
func apiConfig() (api.Config, error) {
	cfg := api.Config{Version: version}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return cfg, fmt.Errorf("failed to get settings: %w", err)
		}
		cfg.Addr = settings.Server.Addr
		cfg.RateLimit = settings.Server.RateLimit
		cfg.TrustProxy = settings.Server.TrustProxy
		cfg.DefaultSearchLimit = settings.Search.DefaultLimit
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.Addr == "" {
		cfg.Addr = settingsDefaults().Server.Addr
	}
	return cfg, nil
}
