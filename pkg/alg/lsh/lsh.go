// Package lsh indexes MinHash signatures by bands so that similar
// signatures can be found without comparing against every entry.
//
// A signature of numBands*numRows positions is cut into numBands bands;
// two signatures become candidates when any band hashes equally.
package lsh

import (
	"cmp"
	"errors"
	"slices"

	"github.com/Sumatoshi-tech/gitstats/pkg/alg/internal/hashutil"
	"github.com/Sumatoshi-tech/gitstats/pkg/alg/minhash"
)

var (
	// ErrInvalidParams is returned when numBands or numRows is not positive.
	ErrInvalidParams = errors.New("lsh: numBands and numRows must be positive")
	// ErrNilSignature is returned when a nil signature is provided.
	ErrNilSignature = errors.New("lsh: signature must not be nil")
	// ErrSizeMismatch is returned when a signature does not have numBands*numRows positions.
	ErrSizeMismatch = errors.New("lsh: signature size must equal numBands * numRows")
)

// Match is a candidate whose estimated similarity reached the threshold.
type Match struct {
	ID         uint64
	Similarity float64
}

// Index is an LSH index over signatures identified by uint64 ids.
// It is not safe for concurrent use.
type Index struct {
	numBands int
	numRows  int
	buckets  []map[uint64]map[uint64]struct{}
	sigs     map[uint64]*minhash.Signature
}

// New creates an index with the given band layout.
func New(numBands, numRows int) (*Index, error) {
	if numBands <= 0 || numRows <= 0 {
		return nil, ErrInvalidParams
	}

	buckets := make([]map[uint64]map[uint64]struct{}, numBands)
	for i := range buckets {
		buckets[i] = map[uint64]map[uint64]struct{}{}
	}

	return &Index{
		numBands: numBands,
		numRows:  numRows,
		buckets:  buckets,
		sigs:     map[uint64]*minhash.Signature{},
	}, nil
}

// SignatureSize returns the signature size the index accepts.
func (idx *Index) SignatureSize() int {
	return idx.numBands * idx.numRows
}

// Len returns the number of indexed signatures.
func (idx *Index) Len() int {
	return len(idx.sigs)
}

// Insert adds or replaces the signature stored under id.
func (idx *Index) Insert(id uint64, sig *minhash.Signature) error {
	err := idx.check(sig)
	if err != nil {
		return err
	}

	idx.Remove(id)
	idx.sigs[id] = sig

	for b, h := range idx.bandHashes(sig) {
		bucket, ok := idx.buckets[b][h]
		if !ok {
			bucket = map[uint64]struct{}{}
			idx.buckets[b][h] = bucket
		}

		bucket[id] = struct{}{}
	}

	return nil
}

// Remove deletes the signature stored under id. Unknown ids are ignored.
func (idx *Index) Remove(id uint64) {
	sig, ok := idx.sigs[id]
	if !ok {
		return
	}

	for b, h := range idx.bandHashes(sig) {
		bucket := idx.buckets[b][h]
		delete(bucket, id)

		if len(bucket) == 0 {
			delete(idx.buckets[b], h)
		}
	}

	delete(idx.sigs, id)
}

// Candidates returns the ids sharing at least one band with sig, ascending.
func (idx *Index) Candidates(sig *minhash.Signature) ([]uint64, error) {
	err := idx.check(sig)
	if err != nil {
		return nil, err
	}

	seen := map[uint64]struct{}{}

	for b, h := range idx.bandHashes(sig) {
		for id := range idx.buckets[b][h] {
			seen[id] = struct{}{}
		}
	}

	ids := make([]uint64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids, nil
}

// QueryThreshold returns candidates whose estimated similarity to sig is at
// least threshold, most similar first; ties keep ascending id order.
func (idx *Index) QueryThreshold(sig *minhash.Signature, threshold float64) ([]Match, error) {
	ids, err := idx.Candidates(sig)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(ids))

	for _, id := range ids {
		sim, simErr := sig.Similarity(idx.sigs[id])
		if simErr != nil {
			return nil, simErr
		}

		if sim >= threshold {
			matches = append(matches, Match{ID: id, Similarity: sim})
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})

	return matches, nil
}

func (idx *Index) check(sig *minhash.Signature) error {
	if sig == nil {
		return ErrNilSignature
	}

	if sig.Len() != idx.SignatureSize() {
		return ErrSizeMismatch
	}

	return nil
}

// bandHashes hashes each band; the band number is mixed in so equal rows
// in different bands do not collide.
func (idx *Index) bandHashes(sig *minhash.Signature) []uint64 {
	hashes := make([]uint64, idx.numBands)

	for b := range idx.numBands {
		h := hashutil.Mix64(uint64(b) + 1)

		for r := range idx.numRows {
			h = hashutil.Combine(h, sig.At(b*idx.numRows+r))
		}

		hashes[b] = h
	}

	return hashes
}
