// Package hashutil provides the 64-bit hashing primitives shared by the
// MinHash and LSH sketches.
package hashutil

import (
	"hash/fnv"
	"io"
)

// Splitmix64 finalizer constants (Vigna, 2014).
const (
	mixMul1   = 0xbf58476d1ce4e5b9
	mixMul2   = 0x94d049bb133111eb
	golden    = 0x9e3779b97f4a7c15
	baseSeed  = 0x517cc1b727220a95
	mixShift1 = 30
	mixShift2 = 27
	mixShift3 = 31
)

// Mix64 applies the splitmix64 finalizer.
func Mix64(v uint64) uint64 {
	v = (v ^ (v >> mixShift1)) * mixMul1
	v = (v ^ (v >> mixShift2)) * mixMul2

	return v ^ (v >> mixShift3)
}

// MixHash derives a seeded variant of a base hash.
func MixHash(base, seed uint64) uint64 {
	return Mix64(base ^ seed)
}

// Combine folds v into the running hash h. The result depends on order.
func Combine(h, v uint64) uint64 {
	return Mix64(h ^ (v + golden + (h << 6) + (h >> 2)))
}

// String returns the FNV-1a hash of s.
func String(s string) uint64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, s)

	return h.Sum64()
}

// Seeds returns n deterministic seeds drawn from a splitmix64 sequence.
func Seeds(n int) []uint64 {
	seeds := make([]uint64, n)
	state := uint64(baseSeed)

	for i := range seeds {
		state += golden
		seeds[i] = Mix64(state)
	}

	return seeds
}
