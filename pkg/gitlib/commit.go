package gitlib

import (
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/gitstats/pkg/safeconv"
)

// Signature is a git author or committer.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash returns the commit hash.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Author returns the commit author. When keeps the author's zone.
func (c *Commit) Author() Signature {
	sig := c.commit.Author()

	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// Message returns the raw commit message.
func (c *Commit) Message() string {
	return c.commit.Message()
}

// NumParents returns the number of parents.
func (c *Commit) NumParents() int {
	return safeconv.MustUintToInt(c.commit.ParentCount())
}

// tree returns the commit's root tree.
func (c *Commit) tree() (*git2go.Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get commit tree: %w", err)
	}

	return tree, nil
}

// parentTree returns the first parent's tree, or nil for a root commit.
func (c *Commit) parentTree() (*git2go.Tree, error) {
	if c.NumParents() == 0 {
		return nil, nil
	}

	parent := c.commit.Parent(0)
	if parent == nil {
		return nil, fmt.Errorf("lookup parent of %s: %w", c.Hash(), ErrParentNotFound)
	}
	defer parent.Free()

	tree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("get parent tree: %w", err)
	}

	return tree, nil
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}
