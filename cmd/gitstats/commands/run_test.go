package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/builtin"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/cochange"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/summary"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit/committest"
	"github.com/Sumatoshi-tech/gitstats/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

var errBoom = errors.New("boom")

// loaderStub records the options it was called with.
type loaderStub struct {
	records []*commit.Record
	err     error
	path    string
	opts    gitlib.LogOptions
}

func (l *loaderStub) load(_ context.Context, path string, opts gitlib.LogOptions) ([]*commit.Record, error) {
	l.path = path
	l.opts = opts

	return l.records, l.err
}

func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gitstats.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	return path
}

func execute(t *testing.T, loader *loaderStub, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRunCommandWithDeps(builtin.Registry(), loader.load)

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", emptyConfig(t)}, args...))

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRun_JSON(t *testing.T) {
	t.Parallel()

	loader := &loaderStub{records: committest.Scenario()}

	out, _, err := execute(t, loader, "--format", "json", "/tmp/repo")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/repo", loader.path)

	var model report.Model
	require.NoError(t, json.Unmarshal([]byte(out), &model))

	committer, ok := model.SummaryValue(summary.RowFirstCommitter)
	require.True(t, ok)
	assert.Equal(t, "Alice", committer)

	commits, ok := model.SummaryValue(summary.RowNumberOfCommits)
	require.True(t, ok)
	assert.Equal(t, "3", commits)

	assert.Len(t, model.CommitsByDay, 3)

	_, ok = model.Block("files_by_extension")
	assert.True(t, ok)
}

func TestRun_TextNoColor(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, &loaderStub{records: committest.Scenario()}, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "\x1b[")
}

func TestRun_PassesHistoryOptions(t *testing.T) {
	t.Parallel()

	loader := &loaderStub{}

	_, _, err := execute(t, loader,
		"--limit", "5", "--since", "2024-01-02", "--first-parent", "--newest-first", "--format", "yaml")
	require.NoError(t, err)

	assert.Equal(t, ".", loader.path)
	assert.Equal(t, 5, loader.opts.Limit)
	assert.True(t, loader.opts.FirstParent)
	assert.True(t, loader.opts.NewestFirst)
	assert.Equal(t, "2024-01-02", loader.opts.Since.Format("2006-01-02"))
}

func TestRun_InvalidSince(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, &loaderStub{}, "--since", "last week")
	require.Error(t, err)
}

func TestRun_LoaderError(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, &loaderStub{err: errBoom})
	require.ErrorIs(t, err, ErrRepositoryLoad)
	require.ErrorIs(t, err, errBoom)
}

func TestRun_UnknownAggregator(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, &loaderStub{}, "--aggregators", "nope")
	require.ErrorIs(t, err, analyze.ErrUnknownAggregator)
}

func TestRun_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, &loaderStub{}, "--format", "pdf")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestRun_SelectedAggregatorsOnly(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, &loaderStub{records: committest.Scenario()},
		"--format", "json", "--aggregators", "commits-by-day")
	require.NoError(t, err)

	var model report.Model
	require.NoError(t, json.Unmarshal([]byte(out), &model))

	assert.Empty(t, model.Summary)
	assert.Len(t, model.CommitsByDay, 3)
	assert.Empty(t, model.LinesByDay)
}

func TestRun_ExportFile(t *testing.T) {
	t.Parallel()

	exportPath := filepath.Join(t.TempDir(), "export.json")

	_, _, err := execute(t, &loaderStub{records: committest.Scenario()}, "--format", "json", "--export", exportPath)
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	require.NoError(t, report.ValidateExport(data))

	var items []report.JSONItem
	require.NoError(t, json.Unmarshal(data, &items))

	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}

	assert.Contains(t, keys, "files_by_extension")
}

// keylessExporter produces an export block that fails schema validation.
type keylessExporter struct{}

func (keylessExporter) Name() string                 { return "Keyless" }
func (keylessExporter) Flag() string                 { return "keyless" }
func (keylessExporter) Description() string          { return "Exports a block without a key." }
func (keylessExporter) Consume(*commit.Record)       {}
func (keylessExporter) Finalize(*report.Model) error { return nil }
func (keylessExporter) ExportJSON() (report.JSONItem, error) {
	return report.JSONItem{Summary: []report.SummaryRow{}, Data: json.RawMessage(`{}`)}, nil
}

func TestRun_InvalidExportLeavesNoFile(t *testing.T) {
	t.Parallel()

	registry, err := analyze.NewRegistry(analyze.Registration{
		Factory: func() analyze.Aggregator { return keylessExporter{} },
		Default: true,
	})
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.json")

	cmd := newRunCommandWithDeps(registry, (&loaderStub{records: committest.Scenario()}).load)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", emptyConfig(t), "--format", "json", "--export", exportPath})

	err = cmd.Execute()
	require.ErrorIs(t, err, report.ErrInvalidExport)
	assert.NoFileExists(t, exportPath)
}

func TestRun_MetricsFile(t *testing.T) {
	t.Parallel()

	metricsPath := filepath.Join(t.TempDir(), "gitstats.prom")

	_, _, err := execute(t, &loaderStub{records: committest.Scenario()},
		"--format", "json", "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gitstats_pipeline_commits")
}

func TestRun_WorkersMatchSequential(t *testing.T) {
	t.Parallel()

	records := committest.Random(7, 300)

	sequential, _, err := execute(t, &loaderStub{records: records}, "--format", "json")
	require.NoError(t, err)

	parallel, _, err := execute(t, &loaderStub{records: records}, "--format", "json", "--workers", "4")
	require.NoError(t, err)

	assert.JSONEq(t, sequential, parallel)
}

func TestRun_CoChangeWindowFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, &loaderStub{records: committest.Scenario()}, "--cochange", "--cochange-window", "3")
	require.NoError(t, err)

	_, _, err = execute(t, &loaderStub{}, "--cochange", "--cochange-window", "0")
	require.ErrorIs(t, err, cochange.ErrInvalidWindow)
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "gitstats.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: json\nhistory:\n  limit: 2\n"), 0o600))

	loader := &loaderStub{records: committest.Scenario()}
	cmd := newRunCommandWithDeps(builtin.Registry(), loader.load)

	var stdout bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "--limit", "1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, loader.opts.Limit)
	assert.True(t, json.Valid(stdout.Bytes()))
}

func TestRun_DebugLogsLanguageCache(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "gitstats.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: debug\n"), 0o600))

	cmd := newRunCommandWithDeps(builtin.Registry(), (&loaderStub{records: committest.Scenario()}).load)

	var stderr bytes.Buffer

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgPath, "--format", "json"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "language cache")
	assert.Contains(t, stderr.String(), "hit_rate")
}
