// Package sim provides the Monte-Carlo engine for long-range percolation.
//
// # Reading Guide
//
// Start with these three files to understand a trial:
//   - unionfind.go: disjoint-set forest with path compression and union by size
//   - sampler.go: random graph draw (all-pairs or geometric-skip edge enumeration)
//   - observables.go: reduction of cluster sizes to per-trial Observables
//
// simulator.go drives NumSamples independent trials, sequentially or over a
// bounded worker pool, and sweep.go runs parameter grids on top of it.
//
// # Determinism
//
// Every trial draws from its own stream derived from the master seed and the
// trial index (rng.go). The same Config always yields bit-identical
// Observables, whatever the number of workers.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Norm / DisplacementNorm: site distance; register new metrics with RegisterNorm
//   - ConnectionModel: distance to edge probability (PowerLawModel by default)
//
// Sub-packages:
//   - sim/trace/: per-trial recording and summaries
package sim
