package morsk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingPlainOffTerminal(t *testing.T) {
	setupEnv(t)

	root, _ := newRootCmd()
	root.SetOut(&bytes.Buffer{})

	assert.Equal(t, "USAGE:", heading(root, "Usage:"))
	assert.False(t, helpStyled(root))
}

func TestHeadingHonoursNoColorFlag(t *testing.T) {
	setupEnv(t)

	root, _ := newRootCmd()
	require.NoError(t, root.PersistentFlags().Set("no-color", "true"))

	assert.False(t, helpStyled(root))
	assert.Equal(t, "FLAGS:", heading(root, "Flags:"))
}

func TestHelpUsesHeadings(t *testing.T) {
	setupEnv(t)

	res := run(t, "match", "--help")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "USAGE:\n")
	assert.Contains(t, res.stdout, "FLAGS:\n")
	assert.NotContains(t, res.stdout, "\x1b[")
}
