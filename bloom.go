package lexis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"

	"github.com/jcalabro/lexis/internal/wordlist"
)

// Oracle answers exact membership questions. A Filter consults its Oracle
// only when its own bits cannot rule a word out.
type Oracle interface {
	CheckWord(word string) bool
}

var (
	// ErrZeroHashes is returned when a filter is built with no hash functions.
	ErrZeroHashes = errors.New("lexis: number of hash functions must be at least 1")

	// ErrZeroBits is returned when a filter is built with an empty bit array.
	ErrZeroBits = errors.New("lexis: number of bits must be at least 1")

	// ErrDuplicateSeed is returned when the seeds given to NewWithSeeds repeat.
	ErrDuplicateSeed = errors.New("lexis: hash seeds must be distinct")

	// ErrWidthMismatch is returned when combining filters of different widths.
	ErrWidthMismatch = errors.New("lexis: filters have different widths")

	// ErrHashMismatch is returned when combining filters whose hash functions
	// differ in count or seeds.
	ErrHashMismatch = errors.New("lexis: filters use different hash functions")

	// ErrNoOracle is returned by CertainlyContains when the filter cannot rule
	// an item out and has no Oracle to ask.
	ErrNoOracle = errors.New("lexis: filter has no oracle")
)

// Filter is a bloom filter over strings with a fixed-width bit array and k
// seeded hash functions. An item's k bit positions are the seeded xxh3 hashes
// of the item taken modulo the width.
//
// The width is fixed when the filter is built and never changes. Filter is
// not safe for concurrent use.
type Filter struct {
	bits    *bitset.BitSet
	numBits uint64   // Width of the bit array
	seeds   []uint64 // One seed per hash function
	count   uint64   // Number of Add calls that set at least one bit
	oracle  Oracle   // Exact fallback, not owned
}

// New creates a filter of numBits bits with numHashes hash functions using
// the default seed sequence. oracle may be nil.
func New(numBits uint64, numHashes uint32, oracle Oracle) (*Filter, error) {
	if numHashes == 0 {
		return nil, ErrZeroHashes
	}
	return newFilter(numBits, defaultSeeds(numHashes), oracle)
}

// NewDefault creates a DefaultBits wide filter with numHashes hash functions.
func NewDefault(numHashes uint32, oracle Oracle) (*Filter, error) {
	return New(DefaultBits, numHashes, oracle)
}

// NewWithSeeds creates a filter of numBits bits with one hash function per
// seed. Seeds must be non-empty and distinct; the slice is copied.
func NewWithSeeds(numBits uint64, seeds []uint64, oracle Oracle) (*Filter, error) {
	if len(seeds) == 0 {
		return nil, ErrZeroHashes
	}
	if !distinct(seeds) {
		return nil, ErrDuplicateSeed
	}
	return newFilter(numBits, slices.Clone(seeds), oracle)
}

func newFilter(numBits uint64, seeds []uint64, oracle Oracle) (*Filter, error) {
	if numBits == 0 {
		return nil, ErrZeroBits
	}
	return &Filter{
		bits:    bitset.New(uint(numBits)),
		numBits: numBits,
		seeds:   seeds,
		oracle:  oracle,
	}, nil
}

// Add adds item to the filter. Adding an item twice leaves the filter
// unchanged.
func (f *Filter) Add(item string) {
	changed := false
	for _, seed := range f.seeds {
		pos := position(item, seed, f.numBits)
		if !f.bits.Test(pos) {
			f.bits.Set(pos)
			changed = true
		}
	}
	if changed {
		f.count++
	}
}

// AddReader adds every word of a comma-separated word list. Items added
// before a read failure stay in the filter.
func (f *Filter) AddReader(r io.Reader) error {
	return wordlist.Scan(r, func(word string) error {
		f.Add(word)
		return nil
	})
}

// AddFile adds every word of the comma-separated word list at path.
func (f *Filter) AddFile(path string) error {
	return wordlist.ScanFile(path, func(word string) error {
		f.Add(word)
		return nil
	})
}

// PossiblyContains reports whether item might be in the filter.
// Returns false only if item was definitely never added.
func (f *Filter) PossiblyContains(item string) bool {
	for _, seed := range f.seeds {
		if !f.bits.Test(position(item, seed, f.numBits)) {
			return false
		}
	}
	return true
}

// CertainlyContains reports whether item is really present. A negative from
// the bit array is final; otherwise the Oracle decides, which counts as one
// Oracle query.
func (f *Filter) CertainlyContains(item string) (bool, error) {
	if !f.PossiblyContains(item) {
		return false, nil
	}
	if f.oracle == nil {
		return false, ErrNoOracle
	}
	return f.oracle.CheckWord(item), nil
}

// Reset clears every bit. The width and hash functions are kept.
func (f *Filter) Reset() {
	f.bits.ClearAll()
	f.count = 0
}

// compatible checks that o can be combined with f bit for bit.
func (f *Filter) compatible(o *Filter) error {
	if f.numBits != o.numBits {
		return fmt.Errorf("%w: %d bits vs %d bits", ErrWidthMismatch, f.numBits, o.numBits)
	}
	if !slices.Equal(f.seeds, o.seeds) {
		return fmt.Errorf("%w: k=%d vs k=%d", ErrHashMismatch, len(f.seeds), len(o.seeds))
	}
	return nil
}

// Intersect replaces f's bits with the bitwise AND of f and o. The result
// possibly contains only items both filters possibly contain.
func (f *Filter) Intersect(o *Filter) error {
	if err := f.compatible(o); err != nil {
		return err
	}
	f.bits.InPlaceIntersection(o.bits)
	f.count = min(f.count, o.count)
	return nil
}

// Union replaces f's bits with the bitwise OR of f and o. The result possibly
// contains every item either filter possibly contains.
func (f *Filter) Union(o *Filter) error {
	if err := f.compatible(o); err != nil {
		return err
	}
	f.bits.InPlaceUnion(o.bits)
	f.count += o.count
	return nil
}

// Intersection returns a new filter holding the bitwise AND of a and b.
// The result uses a's Oracle.
func Intersection(a, b *Filter) (*Filter, error) {
	c := a.Clone()
	if err := c.Intersect(b); err != nil {
		return nil, err
	}
	return c, nil
}

// Union returns a new filter holding the bitwise OR of a and b.
// The result uses a's Oracle.
func Union(a, b *Filter) (*Filter, error) {
	c := a.Clone()
	if err := c.Union(b); err != nil {
		return nil, err
	}
	return c, nil
}

// Clone returns a deep copy of f sharing only its Oracle.
func (f *Filter) Clone() *Filter {
	return &Filter{
		bits:    f.bits.Clone(),
		numBits: f.numBits,
		seeds:   slices.Clone(f.seeds),
		count:   f.count,
		oracle:  f.oracle,
	}
}

// Equal reports whether f and o have the same width, hash functions and bits.
func (f *Filter) Equal(o *Filter) bool {
	return f.compatible(o) == nil && f.bits.Equal(o.bits)
}

// SetOracle sets the Oracle consulted by CertainlyContains.
func (f *Filter) SetOracle(o Oracle) {
	f.oracle = o
}

// Oracle returns the Oracle consulted by CertainlyContains, or nil.
func (f *Filter) Oracle() Oracle {
	return f.oracle
}

// Cap returns the capacity of the filter in bits.
func (f *Filter) Cap() uint64 {
	return f.numBits
}

// K returns the number of hash functions used.
func (f *Filter) K() uint32 {
	return uint32(len(f.seeds))
}

// Seeds returns a copy of the hash seeds, one per hash function.
func (f *Filter) Seeds() []uint64 {
	return slices.Clone(f.seeds)
}

// Count returns the approximate number of distinct items added to the filter.
func (f *Filter) Count() uint64 {
	return f.count
}

// SizeBytes returns the memory held by the bit array and seeds.
func (f *Filter) SizeBytes() uint64 {
	return wordsFor(f.numBits)*8 + uint64(len(f.seeds))*8
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter) EstimatedFillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.numBits)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.numBits, f.K(), f.count)
}

// Serialization constants and errors.
const (
	// serializeVersion is the current serialization format version.
	serializeVersion byte = 1

	// headerSize is the size of the serialization header in bytes.
	// Version (1) + K (4) + NumBits (8) + Count (8) = 21 bytes
	headerSize = 21

	// checksumSize is the size of the trailing xxhash64 checksum.
	checksumSize = 8

	// maxHashes bounds K when decoding.
	maxHashes = 1 << 10

	// maxNumBits bounds the width when decoding (4 GiB of bit array).
	maxNumBits = uint64(1) << 35
)

var (
	// ErrInvalidData is returned when the serialized data is invalid or corrupted.
	ErrInvalidData = errors.New("lexis: invalid serialized data")

	// ErrUnsupportedVersion is returned when the serialization version is not supported.
	ErrUnsupportedVersion = errors.New("lexis: unsupported serialization version")

	// ErrChecksum is returned when the serialized data fails its checksum.
	ErrChecksum = errors.New("lexis: checksum mismatch")
)

// wordsFor returns the number of 64-bit words holding numBits bits.
func wordsFor(numBits uint64) uint64 {
	return (numBits + 63) / 64
}

// encodedSize returns the serialized size of a filter with k hash functions
// and numBits bits.
func encodedSize(k uint32, numBits uint64) uint64 {
	return headerSize + uint64(k)*8 + wordsFor(numBits)*8 + checksumSize
}

// MarshalBinary serializes the bloom filter to a byte slice.
// The serialized format is:
//   - Version (1 byte): serialization format version
//   - K (4 bytes): number of hash functions (little-endian uint32)
//   - NumBits (8 bytes): width of the bit array (little-endian uint64)
//   - Count (8 bytes): number of items added (little-endian uint64)
//   - Seeds (K * 8 bytes): one seed per hash function (little-endian uint64s)
//   - Bits (ceil(NumBits/64) * 8 bytes): the bit array (little-endian uint64s)
//   - Checksum (8 bytes): xxhash64 of everything before it
//
// The Oracle is not serialized.
func (f *Filter) MarshalBinary() ([]byte, error) {
	buf := make([]byte, encodedSize(f.K(), f.numBits))
	le := binary.LittleEndian

	buf[0] = serializeVersion
	le.PutUint32(buf[1:5], f.K())
	le.PutUint64(buf[5:13], f.numBits)
	le.PutUint64(buf[13:21], f.count)

	offset := headerSize
	for _, seed := range f.seeds {
		le.PutUint64(buf[offset:offset+8], seed)
		offset += 8
	}
	words := f.bits.Bytes()
	for i := range wordsFor(f.numBits) {
		var w uint64
		if i < uint64(len(words)) {
			w = words[i]
		}
		le.PutUint64(buf[offset:offset+8], w)
		offset += 8
	}

	le.PutUint64(buf[offset:], xxhash.Sum64(buf[:offset]))
	return buf, nil
}

// UnmarshalBinary deserializes a bloom filter from a byte slice.
// Returns an error if the data is invalid or corrupted. The result has no
// Oracle.
func UnmarshalBinary(data []byte) (*Filter, error) {
	k, numBits, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	want := encodedSize(k, numBits)
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("%w: data length mismatch (got %d bytes, expected %d)", ErrInvalidData, len(data), want)
	}
	return decodeBody(data, k, numBits)
}

// decodeHeader validates the fixed header and returns K and the width.
func decodeHeader(data []byte) (k uint32, numBits uint64, err error) {
	if len(data) < headerSize {
		return 0, 0, fmt.Errorf("%w: data too short (got %d bytes, need at least %d)", ErrInvalidData, len(data), headerSize)
	}

	version := data[0]
	if version != serializeVersion {
		return 0, 0, fmt.Errorf("%w: got version %d, expected %d", ErrUnsupportedVersion, version, serializeVersion)
	}

	k = binary.LittleEndian.Uint32(data[1:5])
	numBits = binary.LittleEndian.Uint64(data[5:13])
	if k == 0 || k > maxHashes {
		return 0, 0, fmt.Errorf("%w: k=%d out of range [1, %d]", ErrInvalidData, k, maxHashes)
	}
	if numBits == 0 || numBits > maxNumBits {
		return 0, 0, fmt.Errorf("%w: numBits=%d out of range [1, %d]", ErrInvalidData, numBits, maxNumBits)
	}
	return k, numBits, nil
}

// decodeBody decodes a full, correctly sized encoding.
func decodeBody(data []byte, k uint32, numBits uint64) (*Filter, error) {
	le := binary.LittleEndian

	sumAt := len(data) - checksumSize
	if got, want := xxhash.Sum64(data[:sumAt]), le.Uint64(data[sumAt:]); got != want {
		return nil, fmt.Errorf("%w: got %#016x, expected %#016x", ErrChecksum, got, want)
	}

	offset := headerSize
	seeds := make([]uint64, k)
	for i := range seeds {
		seeds[i] = le.Uint64(data[offset : offset+8])
		offset += 8
	}
	if !distinct(seeds) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, ErrDuplicateSeed)
	}

	words := make([]uint64, wordsFor(numBits))
	for i := range words {
		words[i] = le.Uint64(data[offset : offset+8])
		offset += 8
	}
	// Bits past the width are never set by Add.
	if tail := numBits % 64; tail != 0 {
		words[len(words)-1] &= (uint64(1) << tail) - 1
	}

	return &Filter{
		bits:    bitset.FromWithLength(uint(numBits), words),
		numBits: numBits,
		seeds:   seeds,
		count:   le.Uint64(data[13:21]),
	}, nil
}

// WriteTo writes the MarshalBinary encoding of f to w.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	data, err := f.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom replaces f's contents with a filter read from r in the
// MarshalBinary encoding. It reads exactly one encoding and keeps f's Oracle.
// On error f is unchanged.
func (f *Filter) ReadFrom(r io.Reader) (int64, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil {
		return int64(n), fmt.Errorf("%w: reading header: %w", ErrInvalidData, err)
	}
	k, numBits, err := decodeHeader(header)
	if err != nil {
		return int64(n), err
	}

	// Grow with the data actually received instead of trusting the header.
	size := encodedSize(k, numBits)
	var buf bytes.Buffer
	buf.Write(header)
	m, err := buf.ReadFrom(io.LimitReader(r, int64(size-headerSize)))
	total := int64(n) + m
	if err != nil {
		return total, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if uint64(buf.Len()) != size {
		return total, fmt.Errorf("%w: truncated (got %d bytes, expected %d)", ErrInvalidData, buf.Len(), size)
	}

	g, err := decodeBody(buf.Bytes(), k, numBits)
	if err != nil {
		return total, err
	}
	g.oracle = f.oracle
	*f = *g
	return total, nil
}
