package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
)

// ErrParentNotFound is returned when a parent commit cannot be loaded.
var ErrParentNotFound = errors.New("parent commit not found")

// renameThreshold is the libgit2 similarity score (0-100) above which a
// delete/add pair is reported as a rename.
const renameThreshold = 50

// fileChange accumulates one diff delta.
type fileChange struct {
	op    commit.FileOperation
	lines commit.LineChange
}

// Changes diffs the commit against its first parent (the empty tree for a
// root commit) and returns per-file line counts and operations, in libgit2
// delta order. Binary files count as changed with zero lines.
func (c *Commit) Changes() ([]commit.LineChange, []commit.FileOperation, error) {
	newTree, err := c.tree()
	if err != nil {
		return nil, nil, err
	}
	defer newTree.Free()

	oldTree, err := c.parentTree()
	if err != nil {
		return nil, nil, err
	}

	if oldTree != nil {
		defer oldTree.Free()
	}

	diff, err := c.repo.diffTrees(oldTree, newTree)
	if err != nil {
		return nil, nil, err
	}

	defer func() { _ = diff.Free() }()

	changes, err := collectChanges(diff)
	if err != nil {
		return nil, nil, fmt.Errorf("diff %s: %w", c.Hash(), err)
	}

	lines := make([]commit.LineChange, 0, len(changes))
	ops := make([]commit.FileOperation, 0, len(changes))

	for _, ch := range changes {
		lines = append(lines, ch.lines)
		ops = append(ops, ch.op)
	}

	return lines, ops, nil
}

// diffTrees computes a tree diff with rename detection.
func (r *Repository) diffTrees(oldTree, newTree *git2go.Tree) (*git2go.Diff, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	findOpts, err := git2go.DefaultDiffFindOptions()
	if err != nil {
		_ = diff.Free()

		return nil, fmt.Errorf("get find options: %w", err)
	}

	findOpts.Flags = git2go.DiffFindRenames
	findOpts.RenameThreshold = renameThreshold

	err = diff.FindSimilar(&findOpts)
	if err != nil {
		_ = diff.Free()

		return nil, fmt.Errorf("find renames: %w", err)
	}

	return diff, nil
}

func collectChanges(diff *git2go.Diff) ([]*fileChange, error) {
	var changes []*fileChange

	err := diff.ForEach(func(delta git2go.DiffDelta, _ float64) (git2go.DiffForEachHunkCallback, error) {
		kind, ok := opKind(delta.Status)
		if !ok {
			return nil, nil
		}

		path := delta.NewFile.Path
		if kind == commit.OpDeleted {
			path = delta.OldFile.Path
		}

		ch := &fileChange{op: commit.FileOperation{
			Path:      path,
			Extension: commit.ExtensionOf(path),
			Kind:      kind,
		}}
		changes = append(changes, ch)

		return func(_ git2go.DiffHunk) (git2go.DiffForEachLineCallback, error) {
			return func(line git2go.DiffLine) error {
				switch line.Origin {
				case git2go.DiffLineAddition:
					ch.lines.Added++
				case git2go.DiffLineDeletion:
					ch.lines.Deleted++
				default:
				}

				return nil
			}, nil
		}, nil
	}, git2go.DiffDetailLines)
	if err != nil {
		return nil, fmt.Errorf("walk diff: %w", err)
	}

	return changes, nil
}

// opKind maps a libgit2 delta status to a file operation. Copies count as
// additions and type changes as modifications.
func opKind(status git2go.Delta) (commit.OpKind, bool) {
	switch status {
	case git2go.DeltaAdded, git2go.DeltaCopied:
		return commit.OpAdded, true
	case git2go.DeltaModified, git2go.DeltaTypeChange:
		return commit.OpModified, true
	case git2go.DeltaDeleted:
		return commit.OpDeleted, true
	case git2go.DeltaRenamed:
		return commit.OpRenamed, true
	case git2go.DeltaUnmodified, git2go.DeltaIgnored, git2go.DeltaUntracked,
		git2go.DeltaUnreadable, git2go.DeltaConflicted:
		return 0, false
	default:
		return 0, false
	}
}
