package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	presencememory "github.com/custodia-labs/mission-control/internal/adapters/driven/presence/memory"
	"github.com/custodia-labs/mission-control/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mission-control/internal/connectors/filesystem"
	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/services"
)

// testEnv holds real services over in-memory stores.
type testEnv struct {
	store     *memory.Store
	config    *memory.ConfigStore
	notesRoot string
	activity  *services.ActivityLogger
	projects  *services.ProjectService
	tasks     *services.TaskService
	board     *services.BoardService
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     memory.NewStore(),
		config:    memory.NewConfigStore(),
		notesRoot: t.TempDir(),
	}
	notes, err := filesystem.New(domain.NotesSettings{Root: env.notesRoot})
	require.NoError(t, err)

	activitySvc := services.NewActivityService(env.store)
	env.activity = services.NewActivityLogger(activitySvc)
	env.projects = services.NewProjectService(env.store, env.activity)
	env.tasks = services.NewTaskService(env.store, env.store, env.activity)
	env.board = services.NewBoardService(env.store)

	SetServices(&Services{
		Search:   services.NewSearchService(notes, env.store),
		Board:    env.board,
		Projects: env.projects,
		Tasks:    env.tasks,
		Activity: activitySvc,
		Calendar: services.NewCalendarService(env.store, nil, time.UTC),
		Agent:    services.NewAgentService(presencememory.NewStore(time.Hour), "main", 5*time.Minute),
		Settings: services.NewSettingsService(env.config),
	})

	t.Cleanup(func() {
		env.activity.Wait()
		SetServices(&Services{})
	})
	return env
}

// seedProject creates a project with one task in the first board column
// and waits for the activity entries it logs.
func (e *testEnv) seedProject(t *testing.T, title, task string) *domain.Project {
	t.Helper()
	ctx := context.Background()

	board, err := e.board.GetBoard(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, board.Columns)

	p, err := e.projects.Create(ctx, domain.NewProjectParams{
		ColumnID: board.Columns[0].ID,
		Title:    title,
	})
	require.NoError(t, err)
	if task != "" {
		_, err = e.tasks.Create(ctx, domain.NewTaskParams{ProjectID: p.ID, Title: task})
		require.NoError(t, err)
	}
	e.activity.Wait()
	return p
}

// execute runs the root command with args and returns combined output.
// Flags are reset afterwards so values do not leak between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
