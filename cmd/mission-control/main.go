// Command mission-control runs the Mission Control CLI, HTTP API, MCP server and TUI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/mission-control/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mission-control/internal/adapters/driven/cron"
	presencememory "github.com/custodia-labs/mission-control/internal/adapters/driven/presence/memory"
	presenceredis "github.com/custodia-labs/mission-control/internal/adapters/driven/presence/redis"
	"github.com/custodia-labs/mission-control/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mission-control/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/cli"
	"github.com/custodia-labs/mission-control/internal/connectors/filesystem"
	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/services"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// version is set by the linker.
var version = "dev"

// stores groups the storage ports the services need.
type stores struct {
	boards     driven.BoardStore
	projects   driven.ProjectStore
	tasks      driven.TaskStore
	activities driven.ActivityStore
	index      driven.SearchIndex
}

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap(opts cli.Options) (*cli.Services, func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	configureLogging(settings.Log, opts.Verbose)
	logger.Section("Startup")
	logger.Debug("Config dir: %s", configDir)

	var closers []func() error

	st, closeStore, err := openStores(opts, configDir)
	if err != nil {
		return nil, nil, err
	}
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	notes, err := filesystem.New(settings.Notes)
	if err != nil {
		return nil, nil, fmt.Errorf("opening notes: %w", err)
	}

	var cronSource driven.CronSource
	if settings.Calendar.CronURL != "" {
		cronSource = cron.NewSource(settings.Calendar.CronURL, settings.Calendar.CronTimeout)
	}

	presence := openPresence(settings.Presence)
	closers = append(closers, presence.Close)

	activityService := services.NewActivityService(st.activities)
	activityLogger := services.NewActivityLogger(activityService)

	searchService := services.NewSearchService(notes, st.index)
	searchService.SetStrictStoreErrors(settings.Search.StrictStoreErrors)

	svc := &cli.Services{
		Search:   searchService,
		Board:    services.NewBoardService(st.boards),
		Projects: services.NewProjectService(st.projects, activityLogger),
		Tasks:    services.NewTaskService(st.tasks, st.projects, activityLogger),
		Activity: activityService,
		Calendar: services.NewCalendarService(st.projects, cronSource, time.Local),
		Agent:    services.NewAgentService(presence, settings.Presence.AgentID, settings.Presence.StaleAfter),
		Settings: settingsService,
		Watcher:  notes,
	}

	cleanup := func() {
		activityLogger.Wait()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Shutdown: %v", err)
			}
		}
		_ = logger.Close()
	}
	return svc, cleanup, nil
}

func configureLogging(s domain.LogSettings, verbose bool) {
	if s.Level != "" {
		if err := logger.SetLevel(s.Level); err != nil {
			logger.Warn("Ignoring log.level: %v", err)
		}
	}
	if s.File != "" {
		logger.SetFile(s.File)
	}
	logger.SetVerbose(verbose)
}

func openStores(opts cli.Options, configDir string) (*stores, func() error, error) {
	if opts.Ephemeral {
		logger.Info("Using in-memory storage")
		m := memory.NewStore()
		return &stores{boards: m, projects: m, tasks: m, activities: m, index: m}, nil, nil
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return &stores{
		boards:     store.BoardStore(),
		projects:   store.ProjectStore(),
		tasks:      store.TaskStore(),
		activities: store.ActivityStore(),
		index:      store.SearchIndex(),
	}, store.Close, nil
}

// openPresence connects to Redis when configured and falls back to memory.
func openPresence(s domain.PresenceSettings) driven.PresenceStore {
	if s.Backend == domain.PresenceBackendRedis {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		store, err := presenceredis.NewStore(ctx, presenceredis.Options{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		})
		if err == nil {
			return store
		}
		logger.Warn("Redis presence unavailable, using memory: %v", err)
	}
	return presencememory.NewStore(0)
}
