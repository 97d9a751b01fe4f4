package sim

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportObservables_TwoFieldsInOrder(t *testing.T) {
	obs := []Observables{
		{AverageSize: 1.5, SizeSpread: 0.5, NumClusters: 4},
		{AverageSize: 3, SizeSpread: 0, NumClusters: 2},
	}
	recs := ExportObservables(obs)
	require.Len(t, recs, 2)
	assert.Equal(t, ObservablesRecord{AverageSize: 1.5, SizeSpread: 0.5}, recs[0])
	assert.Equal(t, ObservablesRecord{AverageSize: 3, SizeSpread: 0}, recs[1])

	data, err := json.Marshal(recs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"average_size":1.5,"size_spread":0.5}`, string(data))
}

func TestNewReport_EchoesConfig(t *testing.T) {
	r := NewReport(Config{L: 10, Alpha: 1, Beta: 0.2, NumSamples: 3, Seed: 9}, time.Now())
	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err, "run id must be a uuid")
	assert.Equal(t, "l1", r.Config.Norm)
	assert.Equal(t, 1, r.Config.Dim)
	assert.Equal(t, "pairs", r.Config.Strategy)
	assert.Equal(t, uint64(9), r.Config.Seed)

	other := NewReport(Config{L: 10}, time.Now())
	assert.NotEqual(t, r.RunID, other.RunID)
}

func TestWriteJSON_RoundTripsObservables(t *testing.T) {
	r := NewReport(Config{L: 4}, time.Now())
	r.Observables = []Observables{{AverageSize: 2, SizeSpread: 1, NumClusters: 2, LargestCluster: 3}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.Observables, decoded.Observables)
	assert.Contains(t, buf.String(), `"average_size": 2`)
	assert.NotContains(t, buf.String(), `"sweep"`)
}

func TestWriteCSV_OneRowPerTrial(t *testing.T) {
	obs := []Observables{
		{AverageSize: 1, NumClusters: 5, LargestCluster: 1, MeanClusterSize: 1, BinderRatio: 0.2},
		{AverageSize: 2.5, SizeSpread: 1.5, NumClusters: 2, LargestCluster: 4, MeanClusterSize: 3.4, BinderRatio: 0.6},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, obs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"1", "2.5", "1.5", "2", "4", "3.4", "0.6"}, rows[2])
}

func TestWriteSweepCSV_OneRowPerPoint(t *testing.T) {
	points := []SweepPoint{
		{L: 8, Alpha: 1, Beta: 0.5, Samples: make([]Observables, 3),
			Summary: ObservableSummary{AverageSize: Summary{Mean: 2, StdDev: 0.25}}},
		{L: 16, Alpha: 1, Beta: 0.5, Samples: make([]Observables, 3)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSweepCSV(&buf, points))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sweepCSVHeader, rows[0])
	assert.Equal(t, []string{"8", "1", "0.5", "3", "2", "0.25"}, rows[1][:6])
	assert.Equal(t, "16", rows[2][0])
}
