package lexis

import "github.com/zeebo/xxh3"

// golden is the splitmix64 increment (2^64 / phi).
const golden = 0x9e3779b97f4a7c15

// position maps s to a bit index for the hash function identified by seed.
// The result is stable across calls and processes for the same inputs.
func position(s string, seed uint64, numBits uint64) uint {
	return uint(xxh3.HashStringSeed(s, seed) % numBits)
}

// defaultSeeds returns k distinct seeds drawn from a splitmix64 sequence.
// The splitmix64 finalizer is a bijection, so distinct states give distinct
// seeds.
func defaultSeeds(k uint32) []uint64 {
	seeds := make([]uint64, k)
	var state uint64
	for i := range seeds {
		state += golden
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		seeds[i] = z ^ (z >> 31)
	}
	return seeds
}

// distinct reports whether seeds holds no repeated value.
func distinct(seeds []uint64) bool {
	seen := make(map[uint64]struct{}, len(seeds))
	for _, s := range seeds {
		if _, ok := seen[s]; ok {
			return false
		}
		seen[s] = struct{}{}
	}
	return true
}
