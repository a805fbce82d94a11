package dedupe

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nsac-nust/stray-tracker/prom"
	st "github.com/nsac-nust/stray-tracker/settings"
)

// Rotating serves membership from the current Filter and can replace it with an empty one.
type Rotating struct {
	current   atomic.Pointer[Filter]
	newFilter func() *Filter
}

// NewRotating returns a Rotating seeded with one filter from newFilter.
func NewRotating(newFilter func() *Filter) *Rotating {
	r := &Rotating{newFilter: newFilter}
	r.current.Store(newFilter())
	return r
}

func (r *Rotating) Insert(key string) { r.current.Load().Insert(key) }

func (r *Rotating) Contains(key string) bool { return r.current.Load().Contains(key) }

// Current returns the filter presently in use.
func (r *Rotating) Current() *Filter { return r.current.Load() }

// Rotate discards all history by swapping in a fresh filter.
func (r *Rotating) Rotate() {
	old := r.current.Swap(r.newFilter())
	prom.FilterRotations.Inc()
	st.Logger.Info().Uint64("discarded_bits_set", old.SetBits()).Msg("rotated duplicate vote filter")
}

// Run rotates every interval until ctx is cancelled.
func (r *Rotating) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Rotate()
		}
	}
}
