package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every parameter validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// MaxSamples bounds NumSamples so the result slice can be allocated up front.
const MaxSamples = math.MaxInt32

// Config groups the parameters of one simulation call.
// It is read-only for the duration of a run.
type Config struct {
	Norm       NormKind // distance metric (default "l1")
	L          int      // sites per axis (must be >= 1)
	Dim        int      // lattice dimension (default 1)
	Alpha      float64  // decay exponent offset, >= 0
	Beta       float64  // connection scale, >= 0
	NumSamples uint64   // number of independent trials
	Seed       uint64   // master seed
	Strategy   Strategy // "pairs" (default) or "skip"
	Workers    int      // trials run concurrently; 0 or 1 = sequential
}

// WithDefaults fills zero-valued optional fields.
func (c Config) WithDefaults() Config {
	if c.Norm == "" {
		c.Norm = NormL1
	}
	if c.Dim == 0 {
		c.Dim = 1
	}
	if c.Strategy == "" {
		c.Strategy = StrategyPairs
	}
	return c
}

// Validate checks the parameters that do not need a constructed lattice.
// NewSimulator runs the full validation.
func (c Config) Validate() error {
	if c.L < 1 {
		return fmt.Errorf("%w: L must be >= 1, got %d", ErrInvalidConfig, c.L)
	}
	if c.NumSamples > MaxSamples {
		return fmt.Errorf("%w: samples must be <= %d, got %d", ErrInvalidConfig, MaxSamples, c.NumSamples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	if !IsValidNormKind(string(c.Norm)) && c.Norm != "" {
		return fmt.Errorf("%w: unknown norm %q; valid: %v", ErrInvalidConfig, c.Norm, NormKinds())
	}
	if !IsValidStrategy(string(c.Strategy)) {
		return fmt.Errorf("%w: unknown strategy %q; valid: pairs, skip", ErrInvalidConfig, c.Strategy)
	}
	return nil
}
