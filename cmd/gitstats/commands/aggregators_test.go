package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/builtin"
)

func executeAggregators(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newAggregatorsCommandWithRegistry(builtin.Registry())

	var stdout bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestAggregators_ListsRegistry(t *testing.T) {
	t.Parallel()

	out, err := executeAggregators(t)
	require.NoError(t, err)

	for _, d := range builtin.Registry().All() {
		assert.Contains(t, out, d.Flag)
		assert.Contains(t, out, d.Description)
	}

	assert.Less(t, bytes.Index([]byte(out), []byte("summary")), bytes.Index([]byte(out), []byte("punch-card")))
}

func TestAggregators_DetailWithOptions(t *testing.T) {
	t.Parallel()

	out, err := executeAggregators(t, "cochange")
	require.NoError(t, err)

	assert.Contains(t, out, "CoChange (cochange)")
	assert.Contains(t, out, "In default set: no")
	assert.Contains(t, out, "--cochange-window")
	assert.Contains(t, out, "10")
}

func TestAggregators_DetailWithoutOptions(t *testing.T) {
	t.Parallel()

	out, err := executeAggregators(t, "summary")
	require.NoError(t, err)

	assert.Contains(t, out, "In default set: yes")
	assert.NotContains(t, out, "--")
}

func TestAggregators_Unknown(t *testing.T) {
	t.Parallel()

	_, err := executeAggregators(t, "nope")
	require.ErrorIs(t, err, analyze.ErrUnknownAggregator)
}
