package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRunCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
	}{
		{"fewer items than workers", 3, 8},
		{"even split", 100, 4},
		{"uneven split", 101, 4},
		{"single worker", 50, 1},
		{"default workers", 64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]int64, tt.items)
			Run(tt.items, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&counts[i], 1)
				}
			})

			for i, c := range counts {
				if c != 1 {
					t.Errorf("index %d visited %d times, want 1", i, c)
				}
			}
		})
	}
}

func TestRunZeroItems(t *testing.T) {
	called := false
	Run(0, 4, func(start, end int) {
		called = true
	})
	if called {
		t.Error("fn called for zero items")
	}
}

func TestRunWithThreshold(t *testing.T) {
	// At or below the threshold the whole range arrives in one call.
	var calls int
	RunWithThreshold(10, 10, 4, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential call got range [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path made %d calls, want 1", calls)
	}

	// Above the threshold every index is still covered exactly once.
	counts := make([]int64, 50)
	RunWithThreshold(50, 10, 5, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&counts[i], 1)
		}
	})
	for i, c := range counts {
		if c != 1 {
			t.Errorf("index %d visited %d times, want 1", i, c)
		}
	}
}
