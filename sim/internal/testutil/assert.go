// Package testutil provides shared test infrastructure for the sim packages.
package testutil

import (
	"math"
	"sort"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertPartition checks that groups cover 0..n-1 exactly once.
func AssertPartition(t *testing.T, groups [][]int, n int) {
	t.Helper()
	seen := make([]bool, n)
	total := 0
	for gi, g := range groups {
		if len(g) == 0 {
			t.Errorf("group %d is empty", gi)
		}
		for _, x := range g {
			if x < 0 || x >= n {
				t.Fatalf("group %d holds out-of-range element %d", gi, x)
			}
			if seen[x] {
				t.Errorf("element %d appears in more than one group", x)
			}
			seen[x] = true
			total++
		}
	}
	if total != n {
		t.Errorf("groups hold %d elements, want %d", total, n)
	}
}

// SortedSizes returns the group sizes in ascending order.
func SortedSizes(groups [][]int) []int {
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g)
	}
	sort.Ints(sizes)
	return sizes
}
