package compute

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRangeExactlyOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 100, 1000} {
		counts := make([]int32, n)
		ParallelFor(n, 8, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&counts[i], 1)
			}
		})
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}

func TestParallelForSmallRangeRunsSerially(t *testing.T) {
	var calls int32
	ParallelFor(4, 8, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 4 {
			t.Errorf("expected a single full-range call, got [%d, %d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected one call, got %d", calls)
	}
}

func TestParallelForDisjointChunks(t *testing.T) {
	n := 1024
	out := make([]float64, n)
	ParallelFor(n, 8, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = float64(i) * 2
		}
	})
	for i := range out {
		if out[i] != float64(i)*2 {
			t.Fatalf("index %d not written correctly: %g", i, out[i])
		}
	}
}
