package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_EveryKindHasColour(t *testing.T) {
	theme := DefaultTheme()

	for _, kind := range []domain.ResultKind{
		domain.KindMemory, domain.KindProject, domain.KindTask, domain.KindActivity,
	} {
		assert.Contains(t, theme.Kinds, kind)
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestStyles_Kind(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, lipgloss.Color("#06b6d4"), s.Kind(domain.KindMemory).GetForeground())
	assert.True(t, s.Kind(domain.KindTask).GetBold())
	assert.Equal(t, s.Muted.GetForeground(), s.Kind(domain.ResultKind("other")).GetForeground())
}
