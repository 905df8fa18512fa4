package series

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pidash/internal/clock"
)

func ms(n int64) time.Time {
	return time.UnixMilli(n)
}

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name   string
		window time.Duration
		want   time.Duration
	}{
		{"default window", 0, DefaultWindow},
		{"negative window", -time.Second, DefaultWindow},
		{"custom window", 30 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.window, nil)
			assert.Equal(t, tt.want, b.Window())
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestInsertOrdering(t *testing.T) {
	fc := clock.NewFake(ms(0))
	b := NewBuffer(DefaultWindow, fc)

	for i := int64(0); i < 5; i++ {
		fc.Set(ms(i * 1000))
		require.True(t, b.Insert(float64(i), time.Time{}))
	}

	got := b.Snapshot()
	require.Len(t, got, 5)
	for i, s := range got {
		assert.Equal(t, float64(i), s.Value)
		assert.True(t, ms(int64(i)*1000).Equal(s.At))
	}
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, b.Values())
}

func TestInsertRejectsNonFinite(t *testing.T) {
	fc := clock.NewFake(ms(0))
	b := NewBuffer(DefaultWindow, fc)
	require.True(t, b.Insert(1, time.Time{}))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.False(t, b.Insert(v, time.Time{}))
	}
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []float64{1}, b.Values())
}

func TestWindowEviction(t *testing.T) {
	tests := []struct {
		name    string
		inserts []int64 // ms timestamps; clock follows each insert
		want    []float64
	}{
		{
			name:    "all within window",
			inserts: []int64{0, 1000, 59000},
			want:    []float64{0, 1, 2},
		},
		{
			name:    "sample exactly at the boundary is kept",
			inserts: []int64{0, 60000},
			want:    []float64{0, 1},
		},
		{
			name:    "sample just past the boundary is evicted",
			inserts: []int64{0, 60001},
			want:    []float64{1},
		},
		{
			name:    "long gap evicts everything older",
			inserts: []int64{0, 500, 1000, 200000},
			want:    []float64{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := clock.NewFake(ms(0))
			b := NewBuffer(DefaultWindow, fc)
			for i, ts := range tt.inserts {
				fc.Set(ms(ts))
				b.Insert(float64(i), time.Time{})
			}
			assert.Equal(t, tt.want, b.Values())
		})
	}
}

func TestWindowInvariantAfterEveryInsert(t *testing.T) {
	fc := clock.NewFake(ms(0))
	b := NewBuffer(10*time.Second, fc)

	for i := 0; i < 200; i++ {
		now := fc.Advance(750 * time.Millisecond)
		b.Insert(float64(i), time.Time{})
		for _, s := range b.Snapshot() {
			assert.LessOrEqual(t, now.Sub(s.At), 10*time.Second)
		}
	}
	// 10s / 750ms rounds down to 13 gaps, plus the newest sample.
	assert.Equal(t, 14, b.Len())
}

func TestEvictionIsMonotonic(t *testing.T) {
	fc := clock.NewFake(ms(0))
	b := NewBuffer(DefaultWindow, fc)
	b.Insert(1, time.Time{})
	fc.Set(ms(30000))
	b.Insert(2, time.Time{})
	fc.Set(ms(70000))
	b.Insert(3, time.Time{})

	// First sample gone; a later insert with an old explicit timestamp does
	// not bring it back.
	assert.Equal(t, []float64{2, 3}, b.Values())
	b.Insert(4, ms(31000))
	assert.Equal(t, []float64{2, 3, 4}, b.Values())
}

func TestEvictionUsesClockNotTimestamp(t *testing.T) {
	fc := clock.NewFake(ms(100000))
	b := NewBuffer(DefaultWindow, fc)

	// Explicit timestamp far in the past: appended, then evicted against now.
	b.Insert(5, ms(0))
	assert.Equal(t, 0, b.Len())
}

func TestOutOfOrderSampleDoesNotOutliveWindow(t *testing.T) {
	fc := clock.NewFake(ms(50000))
	b := NewBuffer(DefaultWindow, fc)
	b.Insert(1, ms(50000))
	b.Insert(2, ms(10000)) // late delivery, still inside the window

	fc.Set(ms(75000))
	b.Insert(3, time.Time{})
	assert.Equal(t, []float64{1, 3}, b.Values())
}

func TestPruneSweepsPrefixAndLateSamples(t *testing.T) {
	fc := clock.NewFake(ms(60000))
	b := NewBuffer(DefaultWindow, fc)
	b.Insert(1, ms(5000))
	b.Insert(2, ms(30000))
	b.Insert(3, ms(8000)) // late
	b.Insert(4, ms(60000))

	fc.Set(ms(80000))
	assert.Equal(t, 2, b.Prune())
	assert.Equal(t, []float64{2, 4}, b.Values())
	assert.Equal(t, 0, b.Prune())
}

func TestSnapshotDoesNotPrune(t *testing.T) {
	fc := clock.NewFake(ms(0))
	b := NewBuffer(DefaultWindow, fc)
	b.Insert(10, time.Time{})
	fc.Set(ms(500))
	b.Insert(12, time.Time{})

	fc.Set(ms(61000))
	assert.Len(t, b.Snapshot(), 2, "reads do not evict")

	assert.Equal(t, 2, b.Prune())
	assert.Empty(t, b.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBuffer(DefaultWindow, clock.NewFake(ms(0)))
	b.Insert(1, time.Time{})
	snap := b.Snapshot()
	snap[0].Value = 99
	assert.Equal(t, []float64{1}, b.Values())
}

func TestLastAndReset(t *testing.T) {
	fc := clock.NewFake(ms(0))
	b := NewBuffer(DefaultWindow, fc)

	_, ok := b.Last()
	assert.False(t, ok)

	b.Insert(1, time.Time{})
	b.Insert(2, time.Time{})
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, 2.0, last.Value)

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Values())
}

func TestBufferConcurrentAccess(t *testing.T) {
	b := NewBuffer(DefaultWindow, nil)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Insert(float64(i), time.Time{})
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = b.Snapshot()
				_ = b.Len()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, b.Len())
}
