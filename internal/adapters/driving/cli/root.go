// Package cli provides the cobra command tree for Mission Control.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// version is set at build time or through SetVersion.
var version = "dev"

// Persistent flag values.
var (
	verbose   bool
	configDir string
	dataDir   string
	ephemeral bool
)

// Options carries the persistent flags to the bootstrap function.
type Options struct {
	Verbose   bool
	ConfigDir string
	DataDir   string

	// Ephemeral keeps board and activity data in memory only.
	Ephemeral bool
}

// Services holds the core services the commands drive.
type Services struct {
	Search   driving.SearchService
	Board    driving.BoardService
	Projects driving.ProjectService
	Tasks    driving.TaskService
	Activity driving.ActivityService
	Calendar driving.CalendarService
	Agent    driving.AgentService
	Settings driving.SettingsService

	// Watcher feeds note changes to the TUI. Optional.
	Watcher tui.NoteWatcher
}

// BootstrapFunc builds services from the persistent flags. The returned
// cleanup function releases them after the command finishes.
type BootstrapFunc func(opts Options) (*Services, func(), error)

var (
	bootstrap BootstrapFunc
	cleanup   func()
)

// Services used by commands.
var (
	searchService   driving.SearchService
	boardService    driving.BoardService
	projectService  driving.ProjectService
	taskService     driving.TaskService
	activityService driving.ActivityService
	calendarService driving.CalendarService
	agentService    driving.AgentService
	settingsService driving.SettingsService
	noteWatcher     tui.NoteWatcher
)

var rootCmd = &cobra.Command{
	Use:   "mission-control",
	Short: "Board, activity log, calendar and federated search for agent workspaces",
	Long: `Mission Control tracks projects on a kanban board, records what agents did in an
activity log, lays scheduled jobs and due dates out on a weekly calendar, and
searches notes, projects, tasks and activity in one ranked list.

Run 'mission-control serve' for the HTTP API, 'mission-control mcp serve' for
AI assistants, or 'mission-control tui' for the terminal search.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configDir, "config-dir", "", "directory holding config.toml (default ~/.mission-control)")
	flags.StringVar(&dataDir, "data-dir", "", "directory holding the database (default <config dir>/data)")
	flags.BoolVar(&ephemeral, "ephemeral", false, "keep board and activity data in memory only")
}

// SetVersion sets the version reported by the version command and the API.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	searchService = s.Search
	boardService = s.Board
	projectService = s.Projects
	taskService = s.Tasks
	activityService = s.Activity
	calendarService = s.Calendar
	agentService = s.Agent
	settingsService = s.Settings
	noteWatcher = s.Watcher
}

// Execute runs the root command and releases bootstrapped services.
func Execute() error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// Services already installed, or nothing to build them with.
	if cmd == versionCmd || bootstrap == nil || searchService != nil {
		return nil
	}

	svc, done, err := bootstrap(Options{
		Verbose:   verbose,
		ConfigDir: configDir,
		DataDir:   dataDir,
		Ephemeral: ephemeral,
	})
	if err != nil {
		return fmt.Errorf("starting mission control: %w", err)
	}
	SetServices(svc)
	cleanup = done
	return nil
}
