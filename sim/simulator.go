package sim

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/lrperc/lrperc/sim/trace"
)

// Simulator runs independent percolation trials for a validated Config.
type Simulator struct {
	cfg     Config
	lattice Lattice
	sampler *Sampler
	key     SimulationKey

	// Trace, when non-nil, receives one record per trial in trial order.
	Trace *trace.SimulationTrace
}

// NewSimulator validates cfg once and prepares the sampler shared by all trials.
func NewSimulator(cfg Config) (*Simulator, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lat, err := NewLattice(cfg.L, cfg.Dim)
	if err != nil {
		return nil, err
	}
	norm, err := NewNorm(cfg.Norm, lat)
	if err != nil {
		return nil, err
	}
	model, err := NewPowerLawModel(cfg.Alpha, cfg.Beta, cfg.Dim)
	if err != nil {
		return nil, err
	}
	sampler, err := NewSampler(lat, norm, model, cfg.Strategy)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:     cfg,
		lattice: lat,
		sampler: sampler,
		key:     NewSimulationKey(cfg.Seed),
	}, nil
}

// Config returns the effective configuration (defaults applied).
func (s *Simulator) Config() Config {
	return s.cfg
}

// Lattice returns the lattice trials are drawn on.
func (s *Simulator) Lattice() Lattice {
	return s.lattice
}

// RunTrial draws trial i and aggregates its clusters.
func (s *Simulator) RunTrial(i int) Observables {
	obs, _ := s.runTrial(i, NewTrialRand(s.key, i))
	return obs
}

func (s *Simulator) runTrial(i int, rng *rand.Rand) (Observables, trace.TrialRecord) {
	res := s.sampler.Sample(rng)
	obs := Aggregate(res.ClusterSizes, s.lattice.NumSites())
	logrus.Debugf("[trial %d] clusters=%d largest=%d average=%g spread=%g",
		i, obs.NumClusters, obs.LargestCluster, obs.AverageSize, obs.SizeSpread)
	return obs, trace.TrialRecord{
		Trial:          i,
		Seed:           TrialSeed(s.key, i),
		AcceptedEdges:  res.AcceptedEdges,
		NumClusters:    obs.NumClusters,
		LargestCluster: obs.LargestCluster,
	}
}

// Run executes every trial and returns one Observables per trial, in trial
// order. Cancellation of ctx is observed between trials.
func (s *Simulator) Run(ctx context.Context) ([]Observables, error) {
	n := int(s.cfg.NumSamples)
	if n == 0 {
		logrus.Warn("samples is 0; returning no observables")
		return []Observables{}, nil
	}
	logrus.Infof("Starting %d trials on %d^%d sites (norm=%s, alpha=%g, beta=%g, strategy=%s, workers=%d)",
		n, s.cfg.L, s.cfg.Dim, s.cfg.Norm, s.cfg.Alpha, s.cfg.Beta, s.sampler.Strategy(), s.cfg.Workers)

	results := make([]Observables, n)
	var records []trace.TrialRecord
	if s.Trace != nil {
		records = make([]trace.TrialRecord, n)
	}

	var err error
	if s.cfg.Workers > 1 {
		err = s.runParallel(ctx, results, records)
	} else {
		err = s.runSequential(ctx, results, records)
	}
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		s.Trace.RecordTrial(rec)
	}
	logrus.Infof("Finished %d trials", n)
	return results, nil
}

func (s *Simulator) runSequential(ctx context.Context, results []Observables, records []trace.TrialRecord) error {
	rng := NewPartitionedRNG(s.key)
	for i := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		obs, rec := s.runTrial(i, rng.ForTrial(i))
		rng.Release(i)
		results[i] = obs
		if records != nil {
			records[i] = rec
		}
	}
	return nil
}

// runParallel fans trials out over a bounded pool. Every trial owns its
// stream and writes only its own slot, so no locking is needed.
func (s *Simulator) runParallel(ctx context.Context, results []Observables, records []trace.TrialRecord) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range results {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			obs, rec := s.runTrial(i, NewTrialRand(s.key, i))
			results[i] = obs
			if records != nil {
				records[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Simulate runs nSamples trials of long-range percolation on a ring of l
// sites with the given norm, using the all-pairs strategy sequentially.
func Simulate(norm NormKind, l int, alpha, beta float64, nSamples uint64, seed uint64) ([]Observables, error) {
	s, err := NewSimulator(Config{
		Norm:       norm,
		L:          l,
		Dim:        1,
		Alpha:      alpha,
		Beta:       beta,
		NumSamples: nSamples,
		Seed:       seed,
	})
	if err != nil {
		return nil, err
	}
	return s.Run(context.Background())
}
