package cochange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/alg/lsh"
	"github.com/Sumatoshi-tech/gitstats/pkg/alg/minhash"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit/committest"
)

func TestDetector_PanicsOnLayoutMismatch(t *testing.T) {
	t.Parallel()

	d := New()

	short, err := minhash.NewHasher(numRows)
	require.NoError(t, err)

	d.hasher = short

	rec := &commit.Record{Hash: "h1", FileOperations: []commit.FileOperation{
		committest.Op("a.go", commit.OpModified),
	}}

	assert.PanicsWithValue(t, "cochange: "+lsh.ErrSizeMismatch.Error(), func() { d.Consume(rec) })
	assert.Zero(t, d.Len())
}
