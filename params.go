package lexis

import "math"

const (
	// DefaultBits is the width of filters built with NewDefault: 81920 bits,
	// or 10 KiB of bit array.
	DefaultBits = 81920

	// DefaultWordFile is the word list AddFile callers conventionally load.
	DefaultWordFile = "words_expect_true.txt"

	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalParams calculates the bloom filter width and hash count for the
// expected number of items and desired false positive rate.
// Returns the number of bits, number of hash functions (k), and bits per item.
func OptimalParams(expectedItems uint64, fpRate float64) (numBits uint64, k uint32, bitsPerItem float64) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal bits per item: -ln(fpRate) / ln(2)^2
	bitsPerItem = -math.Log(fpRate) / ln2Squared

	// Round up to a whole 64-bit word so no storage is wasted.
	numBits = uint64(math.Ceil(float64(expectedItems) * bitsPerItem))
	numBits = (numBits + 63) &^ 63

	// Optimal k: (m/n) * ln(2)
	actualBitsPerItem := float64(numBits) / float64(expectedItems)
	k = uint32(math.Round(actualBitsPerItem * ln2))
	k = max(k, 1)

	return numBits, k, bitsPerItem
}

// EstimateFalsePositiveRate estimates the false positive rate for given parameters.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(numBits uint64, k uint32, itemsAdded uint64) float64 {
	m := float64(numBits)
	n := float64(itemsAdded)
	kf := float64(k)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}
