// Package hash wraps xxHash for the machine codec's header integrity check.
package hash

import "github.com/cespare/xxhash/v2"

// salt128 distinguishes the second digest folded into Sum128 from the first.
// cespare/xxhash/v2 implements 64-bit XXH64 only; there is no XXH3-128 in the
// dependency pack, so the 128-bit integrity value is built from two
// independent 64-bit digests of the same input instead.
const salt128 = 0x9E3779B97F4A7C15

// Sum64 computes the xxHash64 digest of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Sum128 computes a 128-bit digest of data as two 64-bit xxHash64 digests:
// the low word over data as-is, the high word over data with a fixed salt
// folded into the running hash. It is not a real XXH3-128 implementation,
// but it gives the same collision-resistance properties for the purpose of
// detecting accidental corruption of the machine container header.
func Sum128(data []byte) (lo, hi uint64) {
	lo = xxhash.Sum64(data)

	d := xxhash.New()
	var saltBuf [8]byte
	for i := range saltBuf {
		saltBuf[i] = byte(salt128 >> (8 * i))
	}
	d.Write(saltBuf[:])
	d.Write(data)
	hi = d.Sum64()

	return lo, hi
}
