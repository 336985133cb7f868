// Package lexis provides a fixed-width bloom filter over strings that can
// fall back to an exact word store to settle its false positives.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not: if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// # Hashing
//
// A [Filter] has a bit array of N bits and k hash functions. Hash function i
// is xxh3 keyed with seed i; an item's bit positions are its k seeded hashes
// modulo N. Seeds are fixed at construction, either the default splitmix64
// sequence ([New]) or caller-chosen ([NewWithSeeds]).
//
// # Exact Answers
//
// [Filter.PossiblyContains] answers from the bits alone. [Filter.CertainlyContains]
// returns false straight away when the bits rule an item out, and otherwise
// asks the filter's [Oracle], usually a [github.com/jcalabro/lexis/cdn.Server].
// Only that second path costs an Oracle query.
//
// # Combining Filters
//
// [Filter.Intersect] and [Filter.Union] combine two filters bit for bit, in
// place; [Intersection] and [Union] return a new filter. Both operands must
// have the same width ([ErrWidthMismatch]) and the same seeds ([ErrHashMismatch]).
//
// # Choosing Parameters
//
// The width never changes after construction. [OptimalParams] picks a width
// and k for an expected number of items and target false positive rate:
//
//	bits, k, _ := lexis.OptimalParams(10_000, 0.01)
//	f, err := lexis.New(bits, k, server)
//
// # Serialization
//
// [Filter.MarshalBinary], [UnmarshalBinary], [Filter.WriteTo] and
// [Filter.ReadFrom] round-trip the width, seeds and bits. The encoding ends
// with an xxhash64 checksum.
//
// # Thread Safety
//
// [Filter] is NOT thread-safe. Use external synchronization when sharing one
// between goroutines.
package lexis
