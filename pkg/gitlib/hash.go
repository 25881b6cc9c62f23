// Package gitlib reads commit history from a git repository through
// libgit2 and turns it into commit records.
package gitlib

import (
	"encoding/hex"

	git2go "github.com/libgit2/git2go/v34"
)

// HashSize is the size of a SHA-1 hash in bytes.
const HashSize = 20

// Hash is a git object id.
type Hash [HashSize]byte

// HashFromOid converts a libgit2 object id.
func HashFromOid(oid *git2go.Oid) Hash {
	if oid == nil {
		return Hash{}
	}

	return Hash(*oid)
}

// ToOid converts the hash to a libgit2 object id.
func (h Hash) ToOid() *git2go.Oid {
	oid := git2go.Oid(h)

	return &oid
}

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
