package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	sim "github.com/lrperc/lrperc/sim"
)

// FileConfig is the YAML run description accepted by --config.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type FileConfig struct {
	Norm     string       `yaml:"norm"`
	L        int          `yaml:"l" validate:"gte=1"`
	Dim      int          `yaml:"dim" validate:"gte=0"`
	Alpha    float64      `yaml:"alpha" validate:"gte=0"`
	Beta     float64      `yaml:"beta" validate:"gte=0"`
	Samples  uint64       `yaml:"samples"`
	Seed     uint64       `yaml:"seed"`
	Strategy string       `yaml:"strategy" validate:"omitempty,oneof=pairs skip"`
	Workers  int          `yaml:"workers" validate:"gte=0"`
	Trace    string       `yaml:"trace" validate:"omitempty,oneof=none trials"`
	Sweep    *SweepConfig `yaml:"sweep,omitempty"`
}

// SweepConfig lists the grid axes of a sweep. Empty axes use the top-level value.
type SweepConfig struct {
	Sides  []int     `yaml:"sides" validate:"dive,gte=1"`
	Alphas []float64 `yaml:"alphas" validate:"dive,gte=0"`
	Betas  []float64 `yaml:"betas" validate:"dive,gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFileConfig parses path with strict field checking (typos must cause
// errors) and checks structural constraints. Semantic checks happen in sim.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parseFileConfig(data)
}

func parseFileConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// Names are case-insensitive, as on the command line.
	cfg.Norm = strings.ToLower(cfg.Norm)
	cfg.Strategy = strings.ToLower(cfg.Strategy)
	cfg.Trace = strings.ToLower(cfg.Trace)
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// SimConfig converts the file to simulation parameters.
func (c *FileConfig) SimConfig() sim.Config {
	return sim.Config{
		Norm:       sim.NormKind(c.Norm),
		L:          c.L,
		Dim:        c.Dim,
		Alpha:      c.Alpha,
		Beta:       c.Beta,
		NumSamples: c.Samples,
		Seed:       c.Seed,
		Strategy:   sim.Strategy(c.Strategy),
		Workers:    c.Workers,
	}
}

// SweepConfig converts the file to a sweep grid around SimConfig.
func (c *FileConfig) SweepConfig() sim.SweepConfig {
	out := sim.SweepConfig{Base: c.SimConfig()}
	if c.Sweep != nil {
		out.Sides = c.Sweep.Sides
		out.Alphas = c.Sweep.Alphas
		out.Betas = c.Sweep.Betas
	}
	return out
}
