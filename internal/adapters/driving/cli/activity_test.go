package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/api"
)

func TestActivityLog_ThenList(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "activity", "log",
		"--action", "deploy", "--category", "ops", "--title", "Shipped v1.2", "--description", "green build")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged ")
	assert.Contains(t, out, "(success)")

	out, err = execute(t, "activity", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ops/deploy")
	assert.Contains(t, out, "Shipped v1.2")
	assert.Contains(t, out, "green build")
}

func TestActivityLog_MissingFields(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "activity", "log", "--action", "deploy")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging activity")
}

func TestActivityList_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "activity", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No activity found.")
}

func TestActivityList_FilterAndJSON(t *testing.T) {
	env := setupTestServices(t)
	env.seedProject(t, "Rocket launch", "")

	_, err := execute(t, "activity", "log", "--action", "deploy", "--category", "ops", "--title", "Shipped")
	require.NoError(t, err)

	out, err := execute(t, "activity", "list", "--category", "project", "--json")
	require.NoError(t, err)

	var entries []api.ActivityBody
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "project", entries[0].Category)
	assert.Equal(t, "create", entries[0].Action)
}

func TestActivityList_InvalidSince(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "activity", "list", "--since", "last week")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --since")
}

func TestParseSince(t *testing.T) {
	got, err := parseSince("2024-03-05T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))

	got, err = parseSince("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 5, got.Day())
	assert.Equal(t, time.Local, got.Location())

	_, err = parseSince("03/05/2024")
	assert.Error(t, err)
}
