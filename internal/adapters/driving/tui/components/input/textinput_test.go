package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/styles"
)

func TestNewSearchInput(t *testing.T) {
	in := NewSearchInput(styles.DefaultStyles())

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Equal(t, "all", in.Scope())
	assert.Empty(t, in.Value())
}

func TestNewSearchInput_NilStyles(t *testing.T) {
	assert.NotNil(t, NewSearchInput(nil))
}

func TestSearchInput_TypesRunes(t *testing.T) {
	in := NewSearchInput(nil)

	for _, r := range "rocket" {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "rocket", in.Value())

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "rocke", in.Value())
}

func TestSearchInput_ViewShowsScope(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetScope("tasks")

	assert.Contains(t, in.View(), "Search")
	assert.Contains(t, in.View(), "[tasks]")
}

func TestSearchInput_FocusAndBlur(t *testing.T) {
	in := NewSearchInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestSearchInput_SetWidth(t *testing.T) {
	in := NewSearchInput(nil)
	assert.Equal(t, 50, in.Width())

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 80, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, minWidth, in.textinput.Width)
}

func TestSearchInput_History(t *testing.T) {
	in := NewSearchInput(nil)

	in.Recall(-1)
	assert.Empty(t, in.Value(), "recall without history is a no-op")

	in.Remember("alpha")
	in.Remember("beta")
	in.Remember("beta")
	in.Remember("")
	assert.Equal(t, []string{"alpha", "beta"}, in.History())

	in.Recall(-1)
	assert.Equal(t, "beta", in.Value())
	in.Recall(-1)
	assert.Equal(t, "alpha", in.Value())
	in.Recall(-1)
	assert.Equal(t, "alpha", in.Value(), "stops at the oldest entry")

	in.Recall(1)
	assert.Equal(t, "beta", in.Value())
	in.Recall(1)
	assert.Empty(t, in.Value(), "past the newest entry clears")
}

func TestSearchInput_Reset(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetValue("query")
	in.Remember("query")

	in.Reset()

	assert.Empty(t, in.Value())
	in.Recall(-1)
	assert.Equal(t, "query", in.Value())
}
