package sim

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ObservablesRecord is the host-facing shape of one trial's result: two
// named read-only reals and nothing else.
type ObservablesRecord struct {
	AverageSize float64 `json:"average_size"`
	SizeSpread  float64 `json:"size_spread"`
}

// ExportObservables translates results 1:1 into host records, preserving order.
func ExportObservables(obs []Observables) []ObservablesRecord {
	out := make([]ObservablesRecord, len(obs))
	for i, o := range obs {
		out[i] = ObservablesRecord{AverageSize: o.AverageSize, SizeSpread: o.SizeSpread}
	}
	return out
}

// ReportConfig echoes the parameters of a run in a report.
type ReportConfig struct {
	Norm       string  `json:"norm"`
	L          int     `json:"l"`
	Dim        int     `json:"dim"`
	Alpha      float64 `json:"alpha"`
	Beta       float64 `json:"beta"`
	NumSamples uint64  `json:"samples"`
	Seed       uint64  `json:"seed"`
	Strategy   string  `json:"strategy"`
}

// Report is the document written by the CLI. RunID and WallTimeS are the
// only fields that differ between two runs of the same configuration.
type Report struct {
	RunID       string             `json:"run_id"`
	Config      ReportConfig       `json:"config"`
	Observables []Observables      `json:"observables,omitempty"`
	Summary     *ObservableSummary `json:"summary,omitempty"`
	Sweep       []SweepPoint       `json:"sweep,omitempty"`
	WallTimeS   float64            `json:"wall_time_s"`
}

// NewReport creates a report for cfg with a fresh run id.
func NewReport(cfg Config, started time.Time) *Report {
	cfg = cfg.WithDefaults()
	return &Report{
		RunID: uuid.NewString(),
		Config: ReportConfig{
			Norm:       string(cfg.Norm),
			L:          cfg.L,
			Dim:        cfg.Dim,
			Alpha:      cfg.Alpha,
			Beta:       cfg.Beta,
			NumSamples: cfg.NumSamples,
			Seed:       cfg.Seed,
			Strategy:   string(cfg.Strategy),
		},
		WallTimeS: time.Since(started).Seconds(),
	}
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"trial", "average_size", "size_spread", "num_clusters",
	"largest_cluster", "mean_cluster_size", "binder_ratio",
}

// WriteCSV writes one row per trial, in trial order.
func WriteCSV(w io.Writer, obs []Observables) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, o := range obs {
		row := []string{
			strconv.Itoa(i),
			formatFloat(o.AverageSize),
			formatFloat(o.SizeSpread),
			strconv.Itoa(o.NumClusters),
			strconv.Itoa(o.LargestCluster),
			formatFloat(o.MeanClusterSize),
			formatFloat(o.BinderRatio),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var sweepCSVHeader = []string{
	"l", "alpha", "beta", "samples",
	"average_size_mean", "average_size_std", "size_spread_mean", "size_spread_std",
	"mean_cluster_size_mean", "binder_ratio_mean", "largest_cluster_mean",
}

// WriteSweepCSV writes one summary row per grid point, in grid order.
func WriteSweepCSV(w io.Writer, points []SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sweepCSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, p := range points {
		s := p.Summary
		row := []string{
			strconv.Itoa(p.L),
			formatFloat(p.Alpha),
			formatFloat(p.Beta),
			strconv.Itoa(len(p.Samples)),
			formatFloat(s.AverageSize.Mean),
			formatFloat(s.AverageSize.StdDev),
			formatFloat(s.SizeSpread.Mean),
			formatFloat(s.SizeSpread.StdDev),
			formatFloat(s.MeanClusterSize.Mean),
			formatFloat(s.BinderRatio.Mean),
			formatFloat(s.LargestCluster.Mean),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
