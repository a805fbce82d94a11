package dedupe

import (
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/nsac-nust/stray-tracker/prom"
)

// Recent is a lossy lookup of recently seen keys.
type Recent struct {
	slots    []uint64
	sizeMask uint64
}

// NewRecent returns a Recent using roughly sizeBytes of memory, rounded up to a power of two.
func NewRecent(sizeBytes uint64) *Recent {
	size := uint64(math.Pow(2, math.Ceil(math.Log2(float64(sizeBytes)))))
	if size < 8 {
		size = 8
	}
	// 8 bytes per slot
	size = size / 8
	return &Recent{slots: make([]uint64, size), sizeMask: size - 1}
}

// Slots is the number of keys that can be remembered at once.
func (r *Recent) Slots() int { return len(r.slots) }

// CheckAndSet reports whether key was the last key stored in its slot, and stores it.
func (r *Recent) CheckAndSet(key string) bool {
	prom.RecentLookups.Inc()
	h := xxhash.Sum64String(key)
	if h == 0 {
		// zero marks an empty slot
		h = 1
	}
	old := swapSlot(r.slots, h&r.sizeMask, h)
	if old == h {
		prom.RecentHits.Inc()
	} else if old != 0 {
		prom.RecentCollisions.Inc()
	}
	return old == h
}

// swapSlot replaces the value at index and returns the previous content.
func swapSlot(arr []uint64, index uint64, val uint64) uint64 {
	return atomic.SwapUint64(&arr[index], val)
}
