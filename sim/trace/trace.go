package trace

// TraceLevel controls the verbosity of trial tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTrials captures one record per trial.
	TraceLevelTrials TraceLevel = "trials"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelTrials: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelTrials
}

// SimulationTrace collects trial records during a run.
type SimulationTrace struct {
	Config TraceConfig
	Trials []TrialRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Trials: make([]TrialRecord, 0),
	}
}

// RecordTrial appends a trial record.
func (st *SimulationTrace) RecordTrial(record TrialRecord) {
	st.Trials = append(st.Trials, record)
}
