package dedupe

import (
	"crypto/sha256"
	"math/big"
	"strconv"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/nsac-nust/stray-tracker/prom"
)

// Membership answers whether a key has been recorded before.
type Membership interface {
	Insert(key string)
	Contains(key string) bool
}

// Filter is a fixed size bloom filter safe for concurrent use.
type Filter struct {
	mu        sync.RWMutex
	bits      *bitset.BitSet
	capacity  uint64
	hashCount uint
	modulus   *big.Int
}

// New returns an empty Filter with capacity bits and hashCount positions per key.
//
// The caller must ensure capacity > 0 and hashCount > 0.
func New(capacity uint64, hashCount uint) *Filter {
	return &Filter{
		bits:      bitset.New(uint(capacity)), // prealloc to trigger any mem issues upfront
		capacity:  capacity,
		hashCount: hashCount,
		modulus:   new(big.Int).SetUint64(capacity),
	}
}

// Capacity is the number of addressable bits.
func (f *Filter) Capacity() uint64 { return f.capacity }

// HashCount is the number of bit positions derived per key.
func (f *Filter) HashCount() uint { return f.hashCount }

// Insert marks key as seen.
func (f *Filter) Insert(key string) {
	prom.FilterInserts.Inc()
	positions := f.positions(key)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range positions {
		f.bits.Set(uint(p))
	}
}

// Contains returns true if every position derived from key is set.
func (f *Filter) Contains(key string) bool {
	prom.FilterLookups.Inc()
	positions := f.positions(key)
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range positions {
		if !f.bits.Test(uint(p)) {
			return false
		}
	}
	prom.FilterHits.Inc()
	return true
}

// SetBits returns how many bits are currently set.
func (f *Filter) SetBits() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint64(f.bits.Count())
}

func (f *Filter) positions(key string) []uint64 {
	ret := make([]uint64, f.hashCount)
	for i := uint(0); i < f.hashCount; i++ {
		ret[i] = position(key, i, f.modulus)
	}
	return ret
}

// position is SHA-256("<key>:<i>") read as a big-endian integer, modulo capacity.
func position(key string, i uint, modulus *big.Int) uint64 {
	buf := make([]byte, 0, len(key)+1+20)
	buf = append(buf, key...)
	buf = append(buf, ':')
	buf = strconv.AppendUint(buf, uint64(i), 10)
	sum := sha256.Sum256(buf)
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, modulus).Uint64()
}
