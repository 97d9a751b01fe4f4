package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials         int
	TotalAcceptedEdges  int
	MeanAcceptedEdges   float64
	MeanClusters        float64
	MaxLargestCluster   int
	SpanningTrials      int         // trials that ended with a single cluster
	ClusterDistribution map[int]int // number of clusters → count of trials
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ClusterDistribution: make(map[int]int),
	}
	if st == nil || len(st.Trials) == 0 {
		return summary
	}

	summary.TotalTrials = len(st.Trials)
	totalClusters := 0
	for _, r := range st.Trials {
		summary.TotalAcceptedEdges += r.AcceptedEdges
		totalClusters += r.NumClusters
		summary.ClusterDistribution[r.NumClusters]++
		if r.LargestCluster > summary.MaxLargestCluster {
			summary.MaxLargestCluster = r.LargestCluster
		}
		if r.NumClusters == 1 {
			summary.SpanningTrials++
		}
	}
	summary.MeanAcceptedEdges = float64(summary.TotalAcceptedEdges) / float64(summary.TotalTrials)
	summary.MeanClusters = float64(totalClusters) / float64(summary.TotalTrials)

	return summary
}
