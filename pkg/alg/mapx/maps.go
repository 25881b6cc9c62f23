// Package mapx provides generic map helpers used by mergeable histograms.
package mapx

import (
	"cmp"
	stdmaps "maps"
	"slices"
)

// Numeric is the constraint for types that support the += operator.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clone returns a shallow copy of m. Returns an empty map for a nil map.
func Clone[K comparable, V any](m map[K]V) map[K]V {
	clone := make(map[K]V, len(m))
	stdmaps.Copy(clone, m)

	return clone
}

// MergeAdditive adds every value of src into dst. A nil dst is a no-op.
func MergeAdditive[K comparable, V Numeric](dst, src map[K]V) {
	if dst == nil {
		return
	}

	for k, v := range src {
		dst[k] += v
	}
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(stdmaps.Keys(m))
}
