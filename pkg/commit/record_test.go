package commit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
)

func TestRecord_LineTotals(t *testing.T) {
	t.Parallel()

	r := &commit.Record{
		LineChanges: []commit.LineChange{
			{Added: 10, Deleted: 1},
			{Added: 5, Deleted: 2},
		},
	}

	assert.Equal(t, int64(15), r.TotalLinesAdded())
	assert.Equal(t, int64(3), r.TotalLinesDeleted())
	assert.Equal(t, r.TotalLinesAdded(), r.TotalLinesAdded(), "derived values are stable")
}

func TestRecord_FileTotals(t *testing.T) {
	t.Parallel()

	r := &commit.Record{
		FileOperations: []commit.FileOperation{
			{Path: "a.go", Kind: commit.OpAdded},
			{Path: "b.go", Kind: commit.OpAdded},
			{Path: "c.go", Kind: commit.OpModified},
			{Path: "d.go", Kind: commit.OpDeleted},
			{Path: "e.go", Kind: commit.OpRenamed},
		},
	}

	assert.Equal(t, int64(2), r.TotalFilesAdded())
	assert.Equal(t, int64(1), r.TotalFilesModified())
	assert.Equal(t, int64(1), r.TotalFilesDeleted())
	assert.Equal(t, int64(1), r.TotalFilesRenamed())
	assert.Equal(t, []string{"a.go", "b.go", "c.go", "d.go", "e.go"}, r.FilePaths())
}

func TestRecord_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	r := &commit.Record{}

	assert.Zero(t, r.TotalLinesAdded())
	assert.Zero(t, r.TotalFilesAdded())
	assert.Zero(t, r.MessageSize())
	assert.Zero(t, r.MessageLines())
	assert.Empty(t, r.FilePaths())
}

func TestRecord_MessageLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    int64
	}{
		{"empty", "", 0},
		{"single line", "fix bug", 1},
		{"trailing newline", "fix bug\n", 1},
		{"subject and body", "fix bug\n\nlonger text\n", 3},
		{"crlf", "a\r\nb", 2},
		{"only newline", "\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &commit.Record{Message: tt.message}
			assert.Equal(t, tt.want, r.MessageLines())
			assert.Equal(t, int64(len(tt.message)), r.MessageSize())
		})
	}
}

func TestRecord_TimeKeys(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("UTC+9", 9*60*60)
	// 2024-03-09 23:30 UTC is Sunday 08:30 in UTC+9.
	when := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC).In(zone)

	r := &commit.Record{When: when}

	assert.Equal(t, "2024-03-10", r.DayKey())
	assert.Equal(t, 0, r.Weekday())
	assert.Equal(t, 8, r.Hour())
	assert.Equal(t, "0-08", r.WeekdayHourKey())
	assert.Equal(t, "2024-03-10 08:30:00 +09:00", r.Date())
}

func TestExtensionOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"main.go":             "go",
		"src/lib.rs":          "rs",
		"archive.tar.gz":      "gz",
		"Makefile":            "",
		".gitignore":          "",
		"dir.with.dots/file":  "",
		"docs/README.md":      "md",
		"weird/trailing.dot.": "",
	}

	for in, want := range tests {
		assert.Equal(t, want, commit.ExtensionOf(in), in)
	}
}

func TestOpKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "added", commit.OpAdded.String())
	assert.Equal(t, "modified", commit.OpModified.String())
	assert.Equal(t, "deleted", commit.OpDeleted.String())
	assert.Equal(t, "renamed", commit.OpRenamed.String())
	assert.Equal(t, "OpKind(9)", commit.OpKind(9).String())
}
