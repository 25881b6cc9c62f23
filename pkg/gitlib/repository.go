package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrEmptyRepository is returned when HEAD does not point to a commit yet.
var ErrEmptyRepository = errors.New("repository has no commits")

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the repository containing path, searching parent
// directories like git does.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepositoryExtended(path, 0, "")
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Head returns the commit HEAD points to.
func (r *Repository) Head() (Hash, error) {
	unborn, err := r.repo.IsHeadUnborn()
	if err == nil && unborn {
		return Hash{}, ErrEmptyRepository
	}

	ref, err := r.repo.Head()
	if err != nil {
		return Hash{}, fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	return HashFromOid(ref.Target()), nil
}

// Native returns the underlying libgit2 repository.
func (r *Repository) Native() *git2go.Repository {
	return r.repo
}
