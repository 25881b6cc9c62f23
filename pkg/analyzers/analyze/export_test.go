package analyze_test

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/builtin"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit/committest"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

type failingExporter struct {
	stub
}

func (f *failingExporter) ExportJSON() (report.JSONItem, error) {
	return report.NewJSONItem("broken", nil, func() {})
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	set := builtin.DefaultSet()

	_, err := analyze.Run(context.Background(), slices.Values(committest.Scenario()), set, analyze.Options{})
	require.NoError(t, err)

	items, err := analyze.ExportJSON(set)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "files_by_extension", items[0].Key)
	assert.JSONEq(t, `[{"name":"rs","value":4}]`, string(items[0].Data))

	data, err := report.EncodeExport(items)
	require.NoError(t, err)
	require.NoError(t, report.ValidateExport(data))
}

func TestExportJSON_FailureDoesNotTouchState(t *testing.T) {
	t.Parallel()

	bad := &failingExporter{stub: stub{flag: "bad"}}
	set := analyze.NewSet(bad)

	_, err := analyze.Run(context.Background(), slices.Values(committest.Scenario()), set, analyze.Options{})
	require.NoError(t, err)

	_, err = analyze.ExportJSON(set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export Stub bad")
	assert.Len(t, bad.seen, 3)
}
