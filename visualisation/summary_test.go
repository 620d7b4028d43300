package visualisation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"proxybench/report"
)

func TestPrintSummary(t *testing.T) {
	batch := []*report.Result{
		{Name: "caddy", RequestsPerSec: 39000.10, AvgLatencyMs: 2.90, TotalRequests: 1150000},
		{
			Name:           "nginx",
			RequestsPerSec: 43210.55,
			AvgLatencyMs:   2.35,
			TotalRequests:  1300000,
			TimestampsS:    []float64{0, 1},
			CPUPercent:     []float64{40, 60},
			MemoryMB:       []float64{100, 120},
		},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, "20240102_000000", batch)
	out := buf.String()

	assert.Contains(t, out, "BENCHMARK RESULTS SUMMARY 20240102_000000")
	assert.Contains(t, out, "Caddy")
	assert.Contains(t, out, "Nginx")
	assert.Contains(t, out, "43210.55")
	assert.Contains(t, out, "1300000")
	assert.Contains(t, out, "Resource Usage (Average)")
	assert.Contains(t, out, "Highest Throughput: NGINX")
	assert.Contains(t, out, "Lowest Latency:     NGINX")
	assert.Contains(t, out, "Lowest CPU Usage:   NGINX")
}

func TestPrintSummaryNoResourceData(t *testing.T) {
	batch := []*report.Result{{Name: "traefik", RequestsPerSec: 100}}

	var buf bytes.Buffer
	PrintSummary(&buf, "", batch)
	out := buf.String()

	assert.NotContains(t, out, "Resource Usage")
	assert.NotContains(t, out, "Lowest CPU Usage")
	assert.Contains(t, out, "Highest Throughput: TRAEFIK")
}
