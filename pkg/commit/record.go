// Package commit defines the commit record consumed by the stat pipeline.
package commit

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Layouts used for keys derived from the commit timestamp.
const (
	DayKeyLayout = "2006-01-02"
	DateLayout   = "2006-01-02 15:04:05 -07:00"
)

// OpKind is the kind of operation a commit performed on a file.
type OpKind int

// File operation kinds.
const (
	OpAdded OpKind = iota
	OpModified
	OpDeleted
	OpRenamed
)

// String returns the lower-case name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpAdded:
		return "added"
	case OpModified:
		return "modified"
	case OpDeleted:
		return "deleted"
	case OpRenamed:
		return "renamed"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// LineChange holds the line delta of a single file.
type LineChange struct {
	Added   int64 `json:"added"   yaml:"added"`
	Deleted int64 `json:"deleted" yaml:"deleted"`
}

// FileOperation describes what a commit did to one file.
type FileOperation struct {
	Path      string `json:"path"      yaml:"path"`
	Extension string `json:"extension" yaml:"extension"`
	Kind      OpKind `json:"kind"      yaml:"kind"`
}

// Record is one historical commit. Records are treated as immutable once
// built; every derived value below is a pure function of the fields.
type Record struct {
	When           time.Time       `json:"when"            yaml:"when"`
	Hash           string          `json:"hash"            yaml:"hash"`
	Author         string          `json:"author"          yaml:"author"`
	Message        string          `json:"message"         yaml:"message"`
	LineChanges    []LineChange    `json:"line_changes"    yaml:"line_changes"`
	FileOperations []FileOperation `json:"file_operations" yaml:"file_operations"`
}

// TotalLinesAdded sums added lines across all files.
func (r *Record) TotalLinesAdded() int64 {
	var total int64

	for _, lc := range r.LineChanges {
		total += lc.Added
	}

	return total
}

// TotalLinesDeleted sums deleted lines across all files.
func (r *Record) TotalLinesDeleted() int64 {
	var total int64

	for _, lc := range r.LineChanges {
		total += lc.Deleted
	}

	return total
}

// TotalFilesAdded counts added files.
func (r *Record) TotalFilesAdded() int64 { return r.countOps(OpAdded) }

// TotalFilesModified counts modified files.
func (r *Record) TotalFilesModified() int64 { return r.countOps(OpModified) }

// TotalFilesDeleted counts deleted files.
func (r *Record) TotalFilesDeleted() int64 { return r.countOps(OpDeleted) }

// TotalFilesRenamed counts renamed files.
func (r *Record) TotalFilesRenamed() int64 { return r.countOps(OpRenamed) }

func (r *Record) countOps(kind OpKind) int64 {
	var n int64

	for _, op := range r.FileOperations {
		if op.Kind == kind {
			n++
		}
	}

	return n
}

// MessageSize returns the message size in bytes.
func (r *Record) MessageSize() int64 {
	return int64(len(r.Message))
}

// MessageLines returns the number of lines in the message. A trailing
// newline does not start a new line, so "a\nb\n" has two lines.
func (r *Record) MessageLines() int64 {
	return countLines(r.Message)
}

// DayKey returns the commit date truncated to the day, in the commit's zone.
func (r *Record) DayKey() string {
	return r.When.Format(DayKeyLayout)
}

// Date returns the full commit timestamp as shown in summaries.
func (r *Record) Date() string {
	return r.When.Format(DateLayout)
}

// Weekday returns the day of the week, 0 being Sunday.
func (r *Record) Weekday() int {
	return int(r.When.Weekday())
}

// Hour returns the hour of the day in the commit's zone.
func (r *Record) Hour() int {
	return r.When.Hour()
}

// WeekdayHourKey returns the punch-card bucket key, e.g. "3-09".
func (r *Record) WeekdayHourKey() string {
	return fmt.Sprintf("%d-%02d", r.Weekday(), r.Hour())
}

// FilePaths returns the paths touched by the commit, in operation order.
func (r *Record) FilePaths() []string {
	paths := make([]string, len(r.FileOperations))
	for i, op := range r.FileOperations {
		paths[i] = op.Path
	}

	return paths
}

// ExtensionOf returns the extension of a slash-separated path without the
// leading dot. Dotfiles such as ".gitignore" have no extension.
func ExtensionOf(filePath string) string {
	base := path.Base(filePath)

	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}

	return base[idx+1:]
}

func countLines(s string) int64 {
	if s == "" {
		return 0
	}

	count := int64(strings.Count(s, "\n"))

	if s[len(s)-1] != '\n' {
		count++
	}

	return count
}
