// Package series holds the sliding time-window sample buffer that backs
// every live widget.
package series

import (
	"math"
	"sync"
	"time"

	"github.com/rileyhilliard/pidash/internal/clock"
)

// DefaultWindow is the retention window used when none is configured.
const DefaultWindow = 60 * time.Second

// Sample is one timestamped observation. Immutable once stored.
type Sample struct {
	At    time.Time
	Value float64
}

// Buffer retains samples for a fixed time window, oldest first.
// Capacity is bounded by time only; there is no sample-count cap.
// Safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	window  time.Duration
	clock   clock.Clock
	samples []Sample
}

// NewBuffer creates an empty buffer. A non-positive window falls back to
// DefaultWindow and a nil clock to the wall clock.
func NewBuffer(window time.Duration, c clock.Clock) *Buffer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Buffer{
		window: window,
		clock:  clock.OrWall(c),
	}
}

// Insert appends a sample and evicts expired ones.
// A zero at means "now". Non-finite values are dropped and Insert reports
// false; nothing else about the buffer changes.
func (b *Buffer) Insert(value float64, at time.Time) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if at.IsZero() {
		at = now
	}
	b.samples = append(b.samples, Sample{At: at, Value: value})
	b.evict(now)
	return true
}

// Prune evicts expired samples against the current clock and returns how
// many were removed.
func (b *Buffer) Prune() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	before := len(b.samples)
	b.evict(b.clock.Now())
	return before - len(b.samples)
}

// evict removes every sample older than the window, wherever it sits. With
// ordered input that is always a prefix; a late out-of-order sample is
// removed from the middle so nothing outside the window is retained.
// Must be called with b.mu held.
func (b *Buffer) evict(now time.Time) {
	cutoff := now.Add(-b.window)
	kept := b.samples[:0]
	for _, s := range b.samples {
		if !s.At.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	clear(b.samples[len(kept):])
	b.samples = kept
}

// Snapshot returns a copy of the retained samples in insertion order.
// It does not prune; readers that need a fresh view filter by time.
func (b *Buffer) Snapshot() []Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.samples) == 0 {
		return nil
	}
	out := make([]Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// Values returns the retained values in order, for sparkline rendering.
func (b *Buffer) Values() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.samples) == 0 {
		return nil
	}
	out := make([]float64, len(b.samples))
	for i, s := range b.samples {
		out[i] = s.Value
	}
	return out
}

// Last returns the most recently inserted sample.
func (b *Buffer) Last() (Sample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.samples) == 0 {
		return Sample{}, false
	}
	return b.samples[len(b.samples)-1], true
}

// Len returns the number of retained samples.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Window returns the retention window.
func (b *Buffer) Window() time.Duration {
	return b.window
}

// Now returns the buffer clock's current time.
func (b *Buffer) Now() time.Time {
	return b.clock.Now()
}

// Reset discards every sample.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = nil
}
