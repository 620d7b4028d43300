package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanHelpers(t *testing.T) {
	r := &Result{
		TimestampsS: []float64{0, 1, 2},
		CPUPercent:  []float64{10, 20, 30},
		MemoryMB:    []float64{100, 110, 120},
	}
	assert.InDelta(t, 20.0, r.MeanCPU(), 1e-9)
	assert.InDelta(t, 110.0, r.MeanMemoryMB(), 1e-9)

	empty := &Result{}
	assert.Zero(t, empty.MeanCPU())
	assert.Zero(t, empty.MeanMemoryMB())
}

func TestWinners(t *testing.T) {
	batch := []*Result{
		{Name: "caddy", RequestsPerSec: 900, AvgLatencyMs: 3.0},
		{Name: "nginx", RequestsPerSec: 1200, AvgLatencyMs: 2.0},
		{Name: "traefik", RequestsPerSec: 800, AvgLatencyMs: 4.0},
	}

	require.NotNil(t, HighestThroughput(batch))
	assert.Equal(t, "nginx", HighestThroughput(batch).Name)
	assert.Equal(t, "nginx", LowestLatency(batch).Name)
}

func TestResourceWinnersSkipRecordsWithoutData(t *testing.T) {
	batch := []*Result{
		{Name: "caddy"},
		{
			Name:        "nginx",
			TimestampsS: []float64{0, 1},
			CPUPercent:  []float64{50, 60},
			MemoryMB:    []float64{200, 210},
		},
	}

	assert.True(t, AnyResourceData(batch))
	require.NotNil(t, LowestMeanCPU(batch))
	assert.Equal(t, "nginx", LowestMeanCPU(batch).Name)
	assert.Equal(t, "nginx", LowestMeanMemory(batch).Name)
}

func TestResourceWinnersAllEmpty(t *testing.T) {
	batch := []*Result{{Name: "caddy"}, {Name: "nginx"}}

	assert.False(t, AnyResourceData(batch))
	assert.Nil(t, LowestMeanCPU(batch))
	assert.Nil(t, LowestMeanMemory(batch))
}
