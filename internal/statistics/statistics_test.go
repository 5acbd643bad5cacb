package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.WinRate())
	assert.Zero(t, stats.BustRate())
	assert.Zero(t, stats.HouseEdge())
	assert.Error(t, stats.Validate())
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(SessionResult{Net: 25, Rolls: 40, Wagered: 100, Seed: 12345})

	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 25.0, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 25.0, stats.Median())
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 25, stats.BestNet)
	assert.Equal(t, 25, stats.WorstNet)
	assert.True(t, stats.IsLedgerBalanced())
	assert.NoError(t, stats.Validate())
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	results := []SessionResult{
		{Net: 10, Rolls: 20, Wagered: 50},
		{Net: -20, Rolls: 30, Wagered: 80},
		{Net: 30, Rolls: 10, Wagered: 60},
		{Net: 0, Rolls: 5, Wagered: 10},
		{Net: -100, Rolls: 35, Wagered: 100, Busted: true},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Sessions)
	assert.InDelta(t, -16.0, stats.Mean(), 1e-9)
	// Sum of squares 11400, n*mean^2 1280, over n-1.
	assert.InDelta(t, 2530.0, stats.Variance(), 1e-9)
	assert.InDelta(t, 0.0, stats.Median(), 1e-9)
	assert.InDelta(t, -100.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 30.0, stats.Percentile(1), 1e-9)
	assert.InDelta(t, -60.0, stats.Percentile(0.125), 1e-9)

	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Pushes)
	assert.InDelta(t, 0.4, stats.WinRate(), 1e-9)
	assert.InDelta(t, 0.2, stats.BustRate(), 1e-9)
	assert.InDelta(t, 20.0, stats.MeanRolls(), 1e-9)
	assert.InDelta(t, 80.0/300.0, stats.HouseEdge(), 1e-9)
	assert.Equal(t, 30, stats.BestNet)
	assert.Equal(t, -100, stats.WorstNet)

	lo, hi := stats.ConfidenceInterval95()
	assert.Less(t, lo, stats.Mean())
	assert.Greater(t, hi, stats.Mean())
	assert.InDelta(t, stats.Mean(), (lo+hi)/2, 1e-9)
	require.NoError(t, stats.Validate())
}

func TestStatistics_Merge(t *testing.T) {
	all := &Statistics{}
	a := &Statistics{}
	b := &Statistics{}
	for i, net := range []int{-5, 12, 0, -40, 7, 3} {
		r := SessionResult{Net: net, Rolls: i + 1, Wagered: 10}
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	merged := &Statistics{}
	merged.Merge(a)
	merged.Merge(b)
	merged.Merge(nil)

	assert.Equal(t, all.Sessions, merged.Sessions)
	assert.InDelta(t, all.Mean(), merged.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), merged.Variance(), 1e-9)
	assert.InDelta(t, all.Median(), merged.Median(), 1e-9)
	assert.Equal(t, all.BestNet, merged.BestNet)
	assert.Equal(t, all.WorstNet, merged.WorstNet)
	assert.Equal(t, all.TotalRolls, merged.TotalRolls)
	assert.NoError(t, merged.Validate())
}

func TestStatistics_ValidateCatchesCorruption(t *testing.T) {
	stats := &Statistics{}
	stats.Add(SessionResult{Net: 5})
	stats.Add(SessionResult{Net: -5})

	stats.WinNet = 100
	assert.ErrorContains(t, stats.Validate(), "ledger mismatch")
	stats.WinNet = 5

	stats.Values = stats.Values[:1]
	assert.ErrorContains(t, stats.Validate(), "values array length")
}
