// Package trace provides per-trial recording for percolation runs.
// This package does not import sim; it stores pure data types.
package trace

// TrialRecord captures the outcome of a single trial.
type TrialRecord struct {
	Trial          int
	Seed           uint64 // derived stream seed; replays the trial in isolation
	AcceptedEdges  int
	NumClusters    int
	LargestCluster int
}
