package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: "(not set)"},
		{name: "short", input: "abc123", expected: "****"},
		{name: "exactly 8 chars", input: "12345678", expected: "****"},
		{name: "long", input: "s3cr3t-redis-pass", expected: "s3...ss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.input))
		})
	}
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "(not set)", displayValue("calendar.cron_url", ""))
	assert.Equal(t, "20", displayValue("search.default_limit", 20))
	assert.Equal(t, "true", displayValue("search.strict_store_errors", true))
	assert.Equal(t, "hu...er", displayValue("presence.redis_password", "hunter-hunter"))
}

func TestReadPassword_NonTerminal(t *testing.T) {
	assert.Equal(t, "hunter2", readPassword(bytes.NewBufferString("  hunter2 \nrest")))
	assert.Equal(t, "", readPassword(new(bytes.Buffer)))
}

func TestSettingsCmd_ListsKeys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Mission Control Settings")
	assert.Contains(t, out, "search.default_limit")
	assert.Contains(t, out, "presence.redis_password")
	assert.Contains(t, out, domain.DefaultAppSettings().Server.Addr)
}

func TestSettingsCmd_SetThenGet(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings", "set", "search.default_limit", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.default_limit = 7")
	assert.Equal(t, 1, env.config.Saves())

	out, err = execute(t, "settings", "get", "search.default_limit")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
	assert.Equal(t, 7, defaultSearchLimit())
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "search.default_limit", "many")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "no.such.key", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestSettingsCmd_SetSecretFromStdin(t *testing.T) {
	env := setupTestServices(t)
	rootCmd.SetIn(bytes.NewBufferString("hunter-hunter\n"))
	defer rootCmd.SetIn(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "presence.redis_password", "-"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Set presence.redis_password = hu...er")
	assert.NotContains(t, buf.String(), "hunter-hunter")
	assert.Equal(t, "hunter-hunter", env.config.GetString("presence.redis_password"))
}

func TestSettingsCmd_Keys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "presence.backend\n")
	assert.Contains(t, out, "log.level\n")
}

func TestDefaultSearchLimit_NoSettings(t *testing.T) {
	SetServices(&Services{})
	assert.Equal(t, domain.DefaultSearchLimit, defaultSearchLimit())
	assert.Equal(t, domain.DefaultAppSettings(), settingsDefaults())
}
