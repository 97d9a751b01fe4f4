package sim

import (
	"fmt"
	"math"
)

// ConnectionModel maps a site distance to an edge-inclusion probability.
// Probability must be non-increasing in d and bounded in [0, 1].
type ConnectionModel interface {
	Probability(d float64) float64
}

// PowerLawModel is the standard long-range percolation kernel
//
//	p(d) = min(1, Beta / d^(Dim+Alpha))
//
// Alpha controls the decay with distance, Beta the overall connection scale.
type PowerLawModel struct {
	Alpha float64
	Beta  float64
	Dim   int
}

// NewPowerLawModel validates alpha and beta for a lattice of dimension dim.
func NewPowerLawModel(alpha, beta float64, dim int) (PowerLawModel, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return PowerLawModel{}, fmt.Errorf("%w: alpha must be finite and >= 0, got %v", ErrInvalidConfig, alpha)
	}
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return PowerLawModel{}, fmt.Errorf("%w: beta must be finite and >= 0, got %v", ErrInvalidConfig, beta)
	}
	if dim < 1 {
		return PowerLawModel{}, fmt.Errorf("%w: dimension must be >= 1, got %d", ErrInvalidConfig, dim)
	}
	return PowerLawModel{Alpha: alpha, Beta: beta, Dim: dim}, nil
}

// Probability returns the connection probability at distance d > 0.
// d <= 0 never describes a pair of distinct sites and yields 0.
func (m PowerLawModel) Probability(d float64) float64 {
	if d <= 0 || m.Beta == 0 {
		return 0
	}
	p := m.Beta / math.Pow(d, float64(m.Dim)+m.Alpha)
	if p > 1 {
		return 1
	}
	return p
}
