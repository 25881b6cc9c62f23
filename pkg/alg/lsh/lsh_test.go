package lsh_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/alg/lsh"
	"github.com/Sumatoshi-tech/gitstats/pkg/alg/minhash"
)

const (
	testBands = 16
	testRows  = 4
)

func setup(t *testing.T) (*lsh.Index, *minhash.Hasher) {
	t.Helper()

	idx, err := lsh.New(testBands, testRows)
	require.NoError(t, err)

	h, err := minhash.NewHasher(testBands * testRows)
	require.NoError(t, err)

	return idx, h
}

func paths(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s/file%d.go", prefix, i)
	}

	return out
}

func TestNew_InvalidParams(t *testing.T) {
	t.Parallel()

	_, err := lsh.New(0, 4)
	require.ErrorIs(t, err, lsh.ErrInvalidParams)

	_, err = lsh.New(4, 0)
	require.ErrorIs(t, err, lsh.ErrInvalidParams)
}

func TestInsert_QueryIdentical(t *testing.T) {
	t.Parallel()

	idx, h := setup(t)

	require.NoError(t, idx.Insert(1, h.Sign(paths("a", 5))))
	require.NoError(t, idx.Insert(2, h.Sign(paths("b", 5))))

	matches, err := idx.QueryThreshold(h.Sign(paths("a", 5)), 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, uint64(1), matches[0].ID)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
}

func TestCandidates_Dissimilar(t *testing.T) {
	t.Parallel()

	idx, h := setup(t)
	require.NoError(t, idx.Insert(7, h.Sign(paths("left", 40))))

	ids, err := idx.Candidates(h.Sign(paths("right", 40)))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	idx, h := setup(t)
	sig := h.Sign(paths("a", 3))

	require.NoError(t, idx.Insert(1, sig))
	require.NoError(t, idx.Insert(2, sig))
	assert.Equal(t, 2, idx.Len())

	idx.Remove(1)
	idx.Remove(99)

	ids, err := idx.Candidates(sig)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)
	assert.Equal(t, 1, idx.Len())
}

func TestInsert_ReplacesSameID(t *testing.T) {
	t.Parallel()

	idx, h := setup(t)

	require.NoError(t, idx.Insert(1, h.Sign(paths("old", 4))))
	require.NoError(t, idx.Insert(1, h.Sign(paths("new", 4))))

	ids, err := idx.Candidates(h.Sign(paths("old", 4)))
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 1, idx.Len())
}

func TestQueryThreshold_OrderAndFilter(t *testing.T) {
	t.Parallel()

	idx, h := setup(t)
	base := paths("core", 8)

	require.NoError(t, idx.Insert(1, h.Sign(base)))
	require.NoError(t, idx.Insert(2, h.Sign(append(paths("core", 7), "other.go"))))
	require.NoError(t, idx.Insert(3, h.Sign(paths("unrelated", 8))))

	matches, err := idx.QueryThreshold(h.Sign(base), 0.5)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, uint64(1), matches[0].ID)

	for _, m := range matches {
		assert.NotEqual(t, uint64(3), m.ID)
		assert.GreaterOrEqual(t, m.Similarity, 0.5)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	idx, _ := setup(t)

	small, err := minhash.NewHasher(8)
	require.NoError(t, err)

	require.ErrorIs(t, idx.Insert(1, nil), lsh.ErrNilSignature)
	require.ErrorIs(t, idx.Insert(1, small.Sign([]string{"a"})), lsh.ErrSizeMismatch)

	_, err = idx.Candidates(nil)
	require.ErrorIs(t, err, lsh.ErrNilSignature)

	_, err = idx.QueryThreshold(small.Sign([]string{"a"}), 0.5)
	require.ErrorIs(t, err, lsh.ErrSizeMismatch)
}
