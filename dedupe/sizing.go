package dedupe

import "math"

const ln2Squared = math.Ln2 * math.Ln2

// FalsePositiveRate is the expected chance that Contains reports a key never inserted,
// once n distinct keys are in a filter of the given capacity and hash count.
func FalsePositiveRate(capacity uint64, hashCount uint, n uint64) float64 {
	if capacity == 0 {
		return 1
	}
	k := float64(hashCount)
	return math.Pow(1-math.Exp(-k*float64(n)/float64(capacity)), k)
}

// OptimalCapacity is the smallest capacity keeping n keys at or below false positive rate fp.
func OptimalCapacity(n uint64, fp float64) uint64 {
	return uint64(math.Ceil(-float64(n) * math.Log(fp) / ln2Squared))
}

// OptimalHashCount minimises the false positive rate for n keys in capacity bits.
func OptimalHashCount(capacity, n uint64) uint {
	if n == 0 {
		return 1
	}
	k := uint(math.Round(float64(capacity) / float64(n) * math.Ln2))
	if k < 1 {
		return 1
	}
	return k
}
