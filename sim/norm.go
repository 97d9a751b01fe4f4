package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// NormKind selects the distance metric used to modulate connection probability.
type NormKind string

const (
	// NormL1 is the periodic taxicab distance: sum_k min(|dx_k|, L-|dx_k|).
	NormL1 NormKind = "l1"
	// NormLInf is the periodic maximum-coordinate distance.
	NormLInf NormKind = "linf"
	// NormEuclidean is the periodic Euclidean distance.
	NormEuclidean NormKind = "l2"
)

// Norm measures the distance between two sites of a lattice.
// Implementations must be symmetric, non-negative and zero exactly when a == b.
// Norms are read-only after construction and safe for concurrent use.
type Norm interface {
	Name() string
	Distance(a, b int) float64
}

// DisplacementNorm is a translation-invariant Norm: the distance between two
// sites depends only on their periodic displacement. The geometric-skip
// sampler requires it.
type DisplacementNorm interface {
	Norm
	DisplacementDistance(r []int) float64
}

// NormFactory builds a Norm bound to a lattice.
type NormFactory func(lat Lattice) Norm

var normRegistry = map[NormKind]NormFactory{
	NormL1:        func(lat Lattice) Norm { return &torusNorm{lat: lat, kind: NormL1} },
	NormLInf:      func(lat Lattice) Norm { return &torusNorm{lat: lat, kind: NormLInf} },
	NormEuclidean: func(lat Lattice) Norm { return &torusNorm{lat: lat, kind: NormEuclidean} },
}

// RegisterNorm adds or replaces a metric. Call from init() only; the registry
// is not guarded for concurrent mutation.
func RegisterNorm(kind NormKind, factory NormFactory) {
	if factory == nil {
		panic(fmt.Sprintf("RegisterNorm: nil factory for %q", kind))
	}
	normRegistry[kind] = factory
}

// NormKinds lists the registered metrics in lexical order.
func NormKinds() []NormKind {
	kinds := make([]NormKind, 0, len(normRegistry))
	for k := range normRegistry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsValidNormKind returns true if kind is registered.
func IsValidNormKind(kind string) bool {
	_, ok := normRegistry[NormKind(strings.ToLower(kind))]
	return ok
}

// NewNorm builds the metric selected by kind for the given lattice.
func NewNorm(kind NormKind, lat Lattice) (Norm, error) {
	factory, ok := normRegistry[NormKind(strings.ToLower(string(kind)))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown norm %q; valid: %v", ErrInvalidConfig, kind, NormKinds())
	}
	return factory(lat), nil
}

// torusNorm implements the built-in metrics over minimum-image displacements.
type torusNorm struct {
	lat  Lattice
	kind NormKind
}

func (n *torusNorm) Name() string {
	return string(n.kind)
}

func (n *torusNorm) Distance(a, b int) float64 {
	side := n.lat.Side
	var acc float64
	for k := 0; k < n.lat.Dim; k++ {
		acc = n.accumulate(acc, n.lat.fold(b%side-a%side))
		a /= side
		b /= side
	}
	return n.finish(acc)
}

func (n *torusNorm) DisplacementDistance(r []int) float64 {
	var acc float64
	for _, x := range r {
		acc = n.accumulate(acc, n.lat.fold(x))
	}
	return n.finish(acc)
}

func (n *torusNorm) accumulate(acc float64, r int) float64 {
	x := float64(r)
	switch n.kind {
	case NormLInf:
		return math.Max(acc, x)
	case NormEuclidean:
		return acc + x*x
	default:
		return acc + x
	}
}

func (n *torusNorm) finish(acc float64) float64 {
	if n.kind == NormEuclidean {
		return math.Sqrt(acc)
	}
	return acc
}
