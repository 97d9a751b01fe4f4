package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/lrperc/lrperc/sim"
	"github.com/lrperc/lrperc/sim/trace"
)

var (
	// CLI flags for the percolation model
	configPath string  // YAML run description; explicit flags override it
	normName   string  // Distance metric
	sideLength int     // Sites per lattice axis
	dimension  int     // Lattice dimension
	alpha      float64 // Decay exponent offset
	beta       float64 // Connection scale
	numSamples uint64  // Number of independent trials
	seed       uint64  // Master seed
	strategy   string  // Edge enumeration strategy
	workers    int     // Trials run concurrently

	// CLI flags for output
	logLevel   string // Log verbosity level
	traceLevel string // Trial trace verbosity
	outputPath string // Output file ("" = stdout)
	format     string // Output format
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lrperc",
	Short: "Monte-Carlo sampler for long-range percolation cluster statistics",
}

// runCmd executes one batch of trials using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run independent trials and report per-trial observables",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		fc := resolveConfig(cmd)
		err := writeOutput(outputPath, func(w io.Writer) error {
			return executeRun(cmd.Context(), fc.SimConfig(), fc.Trace, format, w)
		})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// sweepCmd runs a grid of parameter points read from --config
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a parameter grid and report cross-trial summaries per point",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if configPath == "" {
			logrus.Fatalf("sweep requires --config with a sweep section")
		}
		fc := resolveConfig(cmd)
		if fc.Sweep == nil {
			logrus.Fatalf("config %s has no sweep section", configPath)
		}
		err := writeOutput(outputPath, func(w io.Writer) error {
			return executeSweep(cmd.Context(), fc.SweepConfig(), format, w)
		})
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		logrus.Info("Sweep complete.")
	},
}

// normsCmd lists the registered distance metrics
var normsCmd = &cobra.Command{
	Use:   "norms",
	Short: "List available distance norms",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range sim.NormKinds() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig loads --config when given and lets every explicitly set
// flag override the file. Without a file, flag values (and their defaults)
// are used as is.
func resolveConfig(cmd *cobra.Command) *FileConfig {
	fc := &FileConfig{}
	fromFile := configPath != ""
	if fromFile {
		loaded, err := LoadFileConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load config %s: %v", configPath, err)
		}
		fc = loaded
		logrus.Infof("Loaded config from %s", configPath)
	}
	applyFlags(cmd, fc, fromFile)
	return fc
}

func applyFlags(cmd *cobra.Command, fc *FileConfig, fromFile bool) {
	use := func(name string) bool {
		return !fromFile || cmd.Flags().Changed(name)
	}
	if use("norm") {
		fc.Norm = normName
	}
	if use("L") {
		fc.L = sideLength
	}
	if use("dim") {
		fc.Dim = dimension
	}
	if use("alpha") {
		fc.Alpha = alpha
	}
	if use("beta") {
		fc.Beta = beta
	}
	if use("samples") {
		fc.Samples = numSamples
	}
	if use("seed") {
		fc.Seed = seed
	}
	if use("strategy") {
		fc.Strategy = strategy
	}
	if use("workers") {
		fc.Workers = workers
	}
	if use("trace") {
		fc.Trace = traceLevel
	}
}

// writeOutput runs write against path ("" = stdout). The file is closed
// before returning, and a close failure is reported when write succeeded.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	writeErr := write(file)
	closeErr := file.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}
	logrus.Debugf("Successfully wrote to '%s'", path)
	return nil
}

// executeRun runs cfg and writes the report to w in the given format.
func executeRun(ctx context.Context, cfg sim.Config, traceLvl, outFormat string, w io.Writer) error {
	if !trace.IsValidTraceLevel(traceLvl) {
		return fmt.Errorf("unknown trace level %q; valid: none, trials", traceLvl)
	}
	if outFormat != "json" && outFormat != "csv" {
		return fmt.Errorf("unknown format %q; valid: json, csv", outFormat)
	}
	startTime := time.Now()

	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return err
	}
	traceCfg := trace.TraceConfig{Level: trace.TraceLevel(traceLvl)}
	if traceCfg.Enabled() {
		s.Trace = trace.NewSimulationTrace(traceCfg)
	}

	obs, err := s.Run(ctx)
	if err != nil {
		return err
	}

	if s.Trace != nil {
		ts := trace.Summarize(s.Trace)
		logrus.Infof("Trace: %d trials, mean accepted edges=%.2f, mean clusters=%.2f, spanning=%d, max largest cluster=%d",
			ts.TotalTrials, ts.MeanAcceptedEdges, ts.MeanClusters, ts.SpanningTrials, ts.MaxLargestCluster)
	}

	if outFormat == "csv" {
		return sim.WriteCSV(w, obs)
	}
	report := sim.NewReport(s.Config(), startTime)
	report.Observables = obs
	if len(obs) > 0 {
		summary, err := sim.SummarizeObservables(obs)
		if err != nil {
			return err
		}
		report.Summary = &summary
	}
	return sim.WriteJSON(w, report)
}

// executeSweep runs the grid and writes the report to w in the given format.
func executeSweep(ctx context.Context, cfg sim.SweepConfig, outFormat string, w io.Writer) error {
	if outFormat != "json" && outFormat != "csv" {
		return fmt.Errorf("unknown format %q; valid: json, csv", outFormat)
	}
	startTime := time.Now()
	points, err := sim.RunSweep(ctx, cfg)
	if err != nil {
		return err
	}
	if outFormat == "csv" {
		return sim.WriteSweepCSV(w, points)
	}
	report := sim.NewReport(cfg.Base, startTime)
	report.Sweep = points
	return sim.WriteJSON(w, report)
}

// Execute runs the CLI root command. An interrupt cancels the run between trials.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML run description; explicitly set flags override it")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "Output file (default stdout)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "Output format (json, csv)")

	// Model parameters
	for _, c := range []*cobra.Command{runCmd, sweepCmd} {
		c.Flags().StringVar(&normName, "norm", string(sim.NormL1), "Distance norm (see `lrperc norms`)")
		c.Flags().IntVar(&sideLength, "L", 64, "Sites per lattice axis")
		c.Flags().IntVar(&dimension, "dim", 1, "Lattice dimension")
		c.Flags().Float64Var(&alpha, "alpha", 1.0, "Decay exponent offset: p(d) = min(1, beta / d^(dim+alpha))")
		c.Flags().Float64Var(&beta, "beta", 0.5, "Connection scale")
		c.Flags().Uint64Var(&numSamples, "samples", 100, "Number of independent trials")
		c.Flags().Uint64Var(&seed, "seed", 42, "Master seed")
		c.Flags().StringVar(&strategy, "strategy", string(sim.StrategyPairs), "Edge enumeration (pairs, skip)")
		c.Flags().IntVar(&workers, "workers", 1, "Trials run concurrently")
		c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trial trace level (none, trials)")
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(normsCmd)
}
