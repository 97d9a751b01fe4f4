package sim

import (
	"sort"
	"testing"
)

// sortedCopy returns the values in ascending order without touching the input.
func sortedCopy(values []int) []int {
	out := append([]int(nil), values...)
	sort.Ints(out)
	return out
}

// mustSimulator builds a Simulator or fails the test.
func mustSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator(%+v): %v", cfg, err)
	}
	return s
}

// mustSampler builds a Sampler for an L^dim lattice with the given norm and
// power-law parameters, or fails the test.
func mustSampler(t *testing.T, side, dim int, kind NormKind, alpha, beta float64, strategy Strategy) *Sampler {
	t.Helper()
	lat, err := NewLattice(side, dim)
	if err != nil {
		t.Fatal(err)
	}
	norm, err := NewNorm(kind, lat)
	if err != nil {
		t.Fatal(err)
	}
	model, err := NewPowerLawModel(alpha, beta, dim)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSampler(lat, norm, model, strategy)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
