package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	root := newRootCommand()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "gitstats ")
	assert.Contains(t, out.String(), "commit:")
}

func TestRootCommand_HasRun(t *testing.T) {
	t.Parallel()

	cmd, _, err := newRootCommand().Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", cmd.Name())
}

func TestRootCommand_HasAggregators(t *testing.T) {
	t.Parallel()

	cmd, _, err := newRootCommand().Find([]string{"aggregators"})
	require.NoError(t, err)
	assert.Equal(t, "aggregators", cmd.Name())
}
