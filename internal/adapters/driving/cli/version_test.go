package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("dev")

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "mission-control version 1.2.3\n", out)
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	called := false
	SetBootstrap(func(Options) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetBootstrap(nil)
	SetServices(&Services{})

	_, err := execute(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
}
