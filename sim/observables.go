package sim

import (
	"gonum.org/v1/gonum/stat"
)

// Observables summarizes the cluster-size distribution of one trial.
// Values are set once by Aggregate and never mutated.
type Observables struct {
	// AverageSize is the arithmetic mean cluster size, N / NumClusters.
	AverageSize float64 `json:"average_size" yaml:"average_size"`
	// SizeSpread is the population standard deviation of cluster sizes.
	SizeSpread float64 `json:"size_spread" yaml:"size_spread"`

	NumClusters    int `json:"num_clusters" yaml:"num_clusters"`
	LargestCluster int `json:"largest_cluster" yaml:"largest_cluster"`
	// MeanClusterSize is the site-weighted mean S = sum s^2 / N, the size of
	// the cluster a uniformly chosen site belongs to.
	MeanClusterSize float64 `json:"mean_cluster_size" yaml:"mean_cluster_size"`
	// BinderRatio is Q = sum s^4 / (sum s^2)^2; 1 for a single cluster and
	// close to 0 for many comparable clusters.
	BinderRatio float64 `json:"binder_ratio" yaml:"binder_ratio"`
}

// Aggregate reduces a cluster-size list over numSites sites to Observables.
// An empty list (numSites == 0) yields the zero value.
func Aggregate(sizes []int, numSites int) Observables {
	if len(sizes) == 0 {
		return Observables{}
	}

	xs := make([]float64, len(sizes))
	largest := 0
	var sq, quad float64
	for i, s := range sizes {
		x := float64(s)
		xs[i] = x
		if s > largest {
			largest = s
		}
		x2 := x * x
		sq += x2
		quad += x2 * x2
	}

	mean, std := stat.PopMeanStdDev(xs, nil)
	obs := Observables{
		AverageSize:    mean,
		SizeSpread:     std,
		NumClusters:    len(sizes),
		LargestCluster: largest,
		BinderRatio:    quad / (sq * sq),
	}
	if numSites > 0 {
		obs.MeanClusterSize = sq / float64(numSites)
	}
	return obs
}
