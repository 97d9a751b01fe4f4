package sim

import (
	"hash/fnv"
	"strconv"

	"golang.org/x/exp/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical Observables.
type SimulationKey uint64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed uint64) SimulationKey {
	return SimulationKey(seed)
}

// TrialStream returns the stream name for trial i.
func TrialStream(i int) string {
	return "trial_" + strconv.Itoa(i)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG streams per trial.
//
// Trial derivation: mix64(mix64(key) + i), seeding a 64-bit PCG source.
// mix64 is a bijection on uint64, so trials of one run never share a seed.
// Named streams use mix64(key XOR fnv1a64(name)).
// The derivation depends only on the key and the trial or name, never on the
// order in which streams are requested, so a worker pool reproduces a
// sequential run.
//
// Thread-safety: NOT thread-safe. Workers derive streams with NewTrialRand and
// own the resulting *rand.Rand.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForStream returns the RNG for a named auxiliary stream.
// The same name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForStream(name string) *rand.Rand {
	return p.cached(name, func() uint64 { return p.deriveSeed(name) })
}

// ForTrial returns the RNG for trial i. It draws the same sequence as
// NewTrialRand(key, i).
func (p *PartitionedRNG) ForTrial(i int) *rand.Rand {
	return p.cached(TrialStream(i), func() uint64 { return TrialSeed(p.key, i) })
}

func (p *PartitionedRNG) cached(name string, seed func() uint64) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(seed()))
	p.streams[name] = rng
	return rng
}

// Release drops the cached stream for trial i once the trial is finished.
func (p *PartitionedRNG) Release(i int) {
	delete(p.streams, TrialStream(i))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func (p *PartitionedRNG) deriveSeed(name string) uint64 {
	return mix64(uint64(p.key) ^ fnv1a64(name))
}

// TrialSeed returns the derived 64-bit seed of trial i without touching any cache.
func TrialSeed(key SimulationKey, i int) uint64 {
	return mix64(mix64(uint64(key)) + uint64(i))
}

// NewTrialRand creates a fresh RNG for trial i.
func NewTrialRand(key SimulationKey, i int) *rand.Rand {
	return rand.New(rand.NewSource(TrialSeed(key, i)))
}

// mix64 is the splitmix64 finalizer. Every step is invertible.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
