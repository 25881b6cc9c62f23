// Package minhash estimates Jaccard similarity between string sets.
//
// A Hasher holds k seeded hash functions; Sign compresses a set into the k
// per-function minimums. The fraction of equal positions between two
// signatures estimates the Jaccard index of the underlying sets.
package minhash

import (
	"errors"
	"math"

	"github.com/Sumatoshi-tech/gitstats/pkg/alg/internal/hashutil"
)

var (
	// ErrZeroNumHashes is returned when numHashes is not positive.
	ErrZeroNumHashes = errors.New("minhash: numHashes must be positive")
	// ErrSizeMismatch is returned when comparing signatures of different sizes.
	ErrSizeMismatch = errors.New("minhash: signature sizes do not match")
	// ErrNilSignature is returned when a nil signature is provided.
	ErrNilSignature = errors.New("minhash: signature must not be nil")
)

// Hasher produces signatures of a fixed size. Signatures are only
// comparable when they come from hashers of the same size.
type Hasher struct {
	seeds []uint64
}

// NewHasher creates a hasher with numHashes hash functions.
func NewHasher(numHashes int) (*Hasher, error) {
	if numHashes <= 0 {
		return nil, ErrZeroNumHashes
	}

	return &Hasher{seeds: hashutil.Seeds(numHashes)}, nil
}

// Size returns the number of hash functions.
func (h *Hasher) Size() int {
	return len(h.seeds)
}

// Sign returns the signature of the token set. Duplicate tokens do not
// change the result.
func (h *Hasher) Sign(tokens []string) *Signature {
	mins := make([]uint64, len(h.seeds))
	for i := range mins {
		mins[i] = math.MaxUint64
	}

	for _, token := range tokens {
		base := hashutil.String(token)

		for i, seed := range h.seeds {
			mins[i] = min(mins[i], hashutil.MixHash(base, seed))
		}
	}

	return &Signature{mins: mins}
}

// Signature is an immutable MinHash signature.
type Signature struct {
	mins []uint64
}

// Len returns the number of hash positions.
func (s *Signature) Len() int {
	return len(s.mins)
}

// At returns the minimum at position i.
func (s *Signature) At(i int) uint64 {
	return s.mins[i]
}

// Similarity returns the estimated Jaccard index of the two sets.
func (s *Signature) Similarity(other *Signature) (float64, error) {
	if other == nil {
		return 0, ErrNilSignature
	}

	if len(s.mins) != len(other.mins) {
		return 0, ErrSizeMismatch
	}

	matches := 0

	for i, v := range s.mins {
		if v == other.mins[i] {
			matches++
		}
	}

	return float64(matches) / float64(len(s.mins)), nil
}
