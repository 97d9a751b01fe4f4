package sim

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"
)

// Strategy selects how a trial enumerates candidate edges.
type Strategy string

const (
	// StrategyPairs scans every unordered pair i < j and draws one uniform per pair.
	StrategyPairs Strategy = "pairs"
	// StrategySkip walks each periodic displacement with geometric skips,
	// drawing one uniform per accepted edge instead of one per pair.
	StrategySkip Strategy = "skip"
)

var validStrategies = map[Strategy]bool{
	StrategyPairs: true,
	StrategySkip:  true,
	"":            true, // empty defaults to pairs
}

// IsValidStrategy returns true if the given name is a recognized strategy.
func IsValidStrategy(name string) bool {
	return validStrategies[Strategy(strings.ToLower(name))]
}

// TrialResult is the outcome of one random graph draw.
type TrialResult struct {
	ClusterSizes  []int
	AcceptedEdges int
}

// Sampler draws random graph instances on a lattice and extracts cluster sizes.
// A Sampler holds no mutable state; one instance can serve concurrent trials
// as long as each trial brings its own *rand.Rand.
type Sampler struct {
	lattice  Lattice
	norm     Norm
	model    ConnectionModel
	strategy Strategy
}

// NewSampler binds a lattice, metric and connection model.
func NewSampler(lat Lattice, norm Norm, model ConnectionModel, strategy Strategy) (*Sampler, error) {
	strategy = Strategy(strings.ToLower(string(strategy)))
	if strategy == "" {
		strategy = StrategyPairs
	}
	if !validStrategies[strategy] {
		return nil, fmt.Errorf("%w: unknown strategy %q; valid: pairs, skip", ErrInvalidConfig, strategy)
	}
	if strategy == StrategySkip {
		if _, ok := norm.(DisplacementNorm); !ok {
			return nil, fmt.Errorf("%w: strategy skip needs a translation-invariant norm, %q is not", ErrInvalidConfig, norm.Name())
		}
	}
	return &Sampler{lattice: lat, norm: norm, model: model, strategy: strategy}, nil
}

// Strategy returns the edge enumeration strategy in use.
func (s *Sampler) Strategy() Strategy {
	return s.strategy
}

// SampleClusterSizes draws one random graph with rng and returns the size of
// every cluster. Identical rng state yields identical sizes.
func (s *Sampler) SampleClusterSizes(rng *rand.Rand) []int {
	return s.Sample(rng).ClusterSizes
}

// Sample draws one random graph with rng.
func (s *Sampler) Sample(rng *rand.Rand) TrialResult {
	uf := NewUnionFind(s.lattice.NumSites())
	var accepted int
	if s.strategy == StrategySkip {
		accepted = s.scanDisplacements(uf, rng)
	} else {
		accepted = s.scanPairs(uf, rng)
	}
	return TrialResult{ClusterSizes: uf.SetSizes(), AcceptedEdges: accepted}
}

// scanPairs is the literal all-pairs draw. Probabilities are memoized per
// distance value since a lattice only has O(Dim*Side) distinct distances.
func (s *Sampler) scanPairs(uf *UnionFind, rng *rand.Rand) int {
	n := uf.Len()
	probs := make(map[float64]float64)
	accepted := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := s.norm.Distance(i, j)
			p, ok := probs[d]
			if !ok {
				p = s.model.Probability(d)
				probs[d] = p
			}
			if rng.Float64() < p {
				uf.Union(i, j)
				accepted++
			}
		}
	}
	return accepted
}

// scanDisplacements visits every canonical displacement r once and, for the
// bases i that carry an edge {i, i+r}, jumps between accepted bases with
// geometric skips.
func (s *Sampler) scanDisplacements(uf *UnionFind, rng *rand.Rand) int {
	norm := s.norm.(DisplacementNorm)
	lat := s.lattice
	n := uf.Len()
	half := lat.Side / 2
	scratch := make([]int, lat.Dim)
	coords := make([]int, lat.Dim)
	accepted := 0

	r := make([]int, lat.Dim)
	for nextDisplacement(r, lat.Side) {
		if !isCanonical(r, lat.Side) {
			continue
		}
		p := s.model.Probability(norm.DisplacementDistance(r))
		if p <= 0 {
			continue
		}
		halfAxis := selfComplementAxis(r, lat.Side)
		for i := 0; ; i++ {
			skip := geometricSkip(p, rng)
			if skip >= float64(n-i) {
				break
			}
			i += int(skip)
			if halfAxis >= 0 {
				// r == -r: {i, i+r} and {i+r, i} are the same pair; keep the
				// base on the lower half of the axis.
				if lat.Coords(i, coords)[halfAxis] >= half {
					continue
				}
			}
			uf.Union(i, lat.Shift(i, r, scratch))
			accepted++
		}
	}
	return accepted
}

// geometricSkip returns the number of failed Bernoulli(p) trials before the
// next success. The result is a float so that tiny p cannot overflow int.
func geometricSkip(p float64, rng *rand.Rand) float64 {
	if p >= 1 {
		return 0
	}
	u := 1 - rng.Float64() // (0, 1]
	return math.Floor(math.Log(u) / math.Log1p(-p))
}

// nextDisplacement advances r through [0, side)^dim in odometer order,
// skipping the zero vector. It returns false once every vector was visited.
func nextDisplacement(r []int, side int) bool {
	for k := len(r) - 1; k >= 0; k-- {
		r[k]++
		if r[k] < side {
			return true
		}
		r[k] = 0
	}
	return false
}

// isCanonical reports whether r is lexicographically <= its periodic negation,
// so that exactly one of r and -r is scanned.
func isCanonical(r []int, side int) bool {
	for _, x := range r {
		neg := mod(-x, side)
		if x != neg {
			return x < neg
		}
	}
	return true
}

// selfComplementAxis returns the first axis with r_k == side/2 when r == -r,
// or -1 otherwise.
func selfComplementAxis(r []int, side int) int {
	axis := -1
	for k, x := range r {
		if mod(-x, side) != x {
			return -1
		}
		if x != 0 && axis < 0 {
			axis = k
		}
	}
	return axis
}
