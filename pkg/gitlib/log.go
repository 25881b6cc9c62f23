package gitlib

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
)

// LogOptions configures history extraction.
type LogOptions struct {
	// Since drops commits authored before this time. Zero means no limit.
	Since time.Time
	// Limit caps the number of commits kept, counted from HEAD. Zero means all.
	Limit int
	// FirstParent follows only first parents (git log --first-parent).
	FirstParent bool
	// NewestFirst keeps walk order instead of returning oldest first.
	NewestFirst bool
}

// Log walks the history from HEAD newest first, in time and topological
// order, and yields each commit. Commits are freed after the loop body runs.
func (r *Repository) Log(ctx context.Context, opts LogOptions) iter.Seq2[*Commit, error] {
	return func(yield func(*Commit, error) bool) {
		head, err := r.Head()
		if err != nil {
			yield(nil, err)

			return
		}

		walk, err := r.repo.Walk()
		if err != nil {
			yield(nil, fmt.Errorf("create revwalk: %w", err))

			return
		}
		defer walk.Free()

		walk.Sorting(git2go.SortTime | git2go.SortTopological)

		if opts.FirstParent {
			walk.SimplifyFirstParent()
		}

		err = walk.Push(head.ToOid())
		if err != nil {
			yield(nil, fmt.Errorf("push HEAD to revwalk: %w", err))

			return
		}

		for count := 0; opts.Limit <= 0 || count < opts.Limit; {
			if ctx.Err() != nil {
				yield(nil, fmt.Errorf("walk history: %w", ctx.Err()))

				return
			}

			oid := new(git2go.Oid)

			err = walk.Next(oid)
			if git2go.IsErrorCode(err, git2go.ErrorCodeIterOver) {
				return
			}

			if err != nil {
				yield(nil, fmt.Errorf("revwalk next: %w", err))

				return
			}

			native, err := r.repo.LookupCommit(oid)
			if err != nil {
				yield(nil, fmt.Errorf("lookup commit %s: %w", oid, err))

				return
			}

			c := &Commit{commit: native, repo: r}

			// The walk is ordered by committer time, so a rebased commit with
			// an old author date can precede in-range commits.
			if !opts.Since.IsZero() && c.Author().When.Before(opts.Since) {
				c.Free()

				continue
			}

			count++

			cont := yield(c, nil)
			c.Free()

			if !cont {
				return
			}
		}
	}
}

// Record converts the commit into a commit record.
func (c *Commit) Record() (*commit.Record, error) {
	lines, ops, err := c.Changes()
	if err != nil {
		return nil, err
	}

	author := c.Author()

	return &commit.Record{
		Hash:           c.Hash().String(),
		Author:         author.Name,
		When:           author.When,
		Message:        c.Message(),
		LineChanges:    lines,
		FileOperations: ops,
	}, nil
}

// Records extracts the history selected by opts as commit records, oldest
// first unless opts.NewestFirst is set.
func (r *Repository) Records(ctx context.Context, opts LogOptions) ([]*commit.Record, error) {
	var records []*commit.Record

	for c, err := range r.Log(ctx, opts) {
		if err != nil {
			return nil, err
		}

		rec, err := c.Record()
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if !opts.NewestFirst {
		slices.Reverse(records)
	}

	return records, nil
}
