package sim

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

// SweepConfig describes a grid of runs. Every empty axis falls back to the
// corresponding value of Base. Each grid point reuses Base.Seed so that
// neighbouring points are driven by the same trial streams.
type SweepConfig struct {
	Base   Config
	Sides  []int
	Alphas []float64
	Betas  []float64
}

// Summary condenses one observable over the trials of a sweep point.
type Summary struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Median float64 `json:"median" yaml:"median"`
	P90    float64 `json:"p90" yaml:"p90"`
}

// ObservableSummary folds the per-trial Observables of a sweep point.
type ObservableSummary struct {
	AverageSize     Summary `json:"average_size" yaml:"average_size"`
	SizeSpread      Summary `json:"size_spread" yaml:"size_spread"`
	MeanClusterSize Summary `json:"mean_cluster_size" yaml:"mean_cluster_size"`
	BinderRatio     Summary `json:"binder_ratio" yaml:"binder_ratio"`
	LargestCluster  Summary `json:"largest_cluster" yaml:"largest_cluster"`
}

// SweepPoint is the result of one grid point.
type SweepPoint struct {
	L       int               `json:"l" yaml:"l"`
	Alpha   float64           `json:"alpha" yaml:"alpha"`
	Beta    float64           `json:"beta" yaml:"beta"`
	Samples []Observables     `json:"samples" yaml:"samples"`
	Summary ObservableSummary `json:"summary" yaml:"summary"`
}

// Points expands the grid in L-major, then alpha, then beta order.
func (c SweepConfig) Points() []Config {
	sides := c.Sides
	if len(sides) == 0 {
		sides = []int{c.Base.L}
	}
	alphas := c.Alphas
	if len(alphas) == 0 {
		alphas = []float64{c.Base.Alpha}
	}
	betas := c.Betas
	if len(betas) == 0 {
		betas = []float64{c.Base.Beta}
	}
	points := make([]Config, 0, len(sides)*len(alphas)*len(betas))
	for _, l := range sides {
		for _, a := range alphas {
			for _, b := range betas {
				p := c.Base
				p.L, p.Alpha, p.Beta = l, a, b
				points = append(points, p)
			}
		}
	}
	return points
}

// RunSweep validates every grid point, then runs them in order.
func RunSweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	points := cfg.Points()
	sims := make([]*Simulator, len(points))
	for i, p := range points {
		s, err := NewSimulator(p)
		if err != nil {
			return nil, fmt.Errorf("sweep point %d (L=%d, alpha=%g, beta=%g): %w", i, p.L, p.Alpha, p.Beta, err)
		}
		sims[i] = s
	}

	results := make([]SweepPoint, 0, len(points))
	for i, s := range sims {
		p := points[i]
		logrus.Infof("Sweep point %d/%d: L=%d alpha=%g beta=%g", i+1, len(points), p.L, p.Alpha, p.Beta)
		obs, err := s.Run(ctx)
		if err != nil {
			return nil, err
		}
		point := SweepPoint{L: p.L, Alpha: p.Alpha, Beta: p.Beta, Samples: obs}
		if len(obs) > 0 {
			summary, err := SummarizeObservables(obs)
			if err != nil {
				return nil, fmt.Errorf("summarizing sweep point %d: %w", i, err)
			}
			point.Summary = summary
		}
		results = append(results, point)
	}
	return results, nil
}

// SummarizeObservables computes cross-trial statistics of every observable.
// It fails on an empty input.
func SummarizeObservables(obs []Observables) (ObservableSummary, error) {
	columns := map[string][]float64{}
	for _, o := range obs {
		columns["average_size"] = append(columns["average_size"], o.AverageSize)
		columns["size_spread"] = append(columns["size_spread"], o.SizeSpread)
		columns["mean_cluster_size"] = append(columns["mean_cluster_size"], o.MeanClusterSize)
		columns["binder_ratio"] = append(columns["binder_ratio"], o.BinderRatio)
		columns["largest_cluster"] = append(columns["largest_cluster"], float64(o.LargestCluster))
	}

	var out ObservableSummary
	targets := []struct {
		name string
		dst  *Summary
	}{
		{"average_size", &out.AverageSize},
		{"size_spread", &out.SizeSpread},
		{"mean_cluster_size", &out.MeanClusterSize},
		{"binder_ratio", &out.BinderRatio},
		{"largest_cluster", &out.LargestCluster},
	}
	for _, t := range targets {
		s, err := summarize(columns[t.name])
		if err != nil {
			return ObservableSummary{}, fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = s
	}
	return out, nil
}

func summarize(data stats.Float64Data) (Summary, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}
	std, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, err
	}
	p90, err := stats.PercentileNearestRank(data, 90)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Mean: mean, StdDev: std, Median: median, P90: p90}, nil
}
