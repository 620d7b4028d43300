package visualisation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxybench/report"
)

func sampleBatch(withResources bool) []*report.Result {
	nginx := &report.Result{Name: "nginx", RequestsPerSec: 43210.55, AvgLatencyMs: 2.35}
	caddy := &report.Result{Name: "caddy", RequestsPerSec: 39000.10, AvgLatencyMs: 2.90}
	if withResources {
		nginx.TimestampsS = []float64{0, 1}
		nginx.CPUPercent = []float64{40, 60}
		nginx.MemoryMB = []float64{100, 120}
	}
	return []*report.Result{caddy, nginx}
}

func TestBuildDashboardWithResourcePanels(t *testing.T) {
	dash := BuildDashboard(sampleBatch(true), DefaultStyles(), "20240102_000000")

	require.Len(t, dash.Dashboard.Panels, 5)
	assert.Equal(t, "Throughput (req/s)", dash.Dashboard.Panels[0].Title)
	assert.Equal(t, "CPU Usage (%)", dash.Dashboard.Panels[3].Title)
	assert.Equal(t, "Memory Usage (MB)", dash.Dashboard.Panels[4].Title)
	assert.Contains(t, dash.Dashboard.Title, "20240102_000000")

	// Every subject gets a color override on the throughput panel.
	overrides := dash.Dashboard.Panels[0].FieldConfig.Overrides
	require.Len(t, overrides, 2)
	assert.Equal(t, "byName", overrides[0].Matcher.ID)
	assert.Equal(t, "caddy", overrides[0].Matcher.Options)
	assert.Equal(t, "nginx", overrides[1].Matcher.Options)
}

func TestBuildDashboardSkipsResourcePanelsWithoutData(t *testing.T) {
	dash := BuildDashboard(sampleBatch(false), DefaultStyles(), "20240102_000000")

	require.Len(t, dash.Dashboard.Panels, 3)
	for _, p := range dash.Dashboard.Panels {
		assert.NotEqual(t, "timeseries", p.Type)
	}
}

func TestDashedSubjectsGetLineStyleOverride(t *testing.T) {
	dash := BuildDashboard(sampleBatch(true), DefaultStyles(), "b")

	cpuPanel := dash.Dashboard.Panels[3]
	// caddy has a dash pattern, nginx is solid.
	require.Len(t, cpuPanel.FieldConfig.Overrides, 2)
	assert.Len(t, cpuPanel.FieldConfig.Overrides[0].Properties, 2)
	assert.Len(t, cpuPanel.FieldConfig.Overrides[1].Properties, 1)
}

func TestResourcePanelsEmbedParsedSeries(t *testing.T) {
	dash := BuildDashboard(sampleBatch(true), DefaultStyles(), "b")

	cpuPanel := dash.Dashboard.Panels[3]
	memPanel := dash.Dashboard.Panels[4]

	// Snapshot frames exist only for subjects with resource data, so the
	// caddy record contributes nothing.
	require.Len(t, cpuPanel.SnapshotData, 1)
	assert.Equal(t, "nginx", cpuPanel.SnapshotData[0].Target)
	assert.Equal(t, [][2]float64{{40, 0}, {60, 1000}}, cpuPanel.SnapshotData[0].Datapoints)

	require.Len(t, memPanel.SnapshotData, 1)
	assert.Equal(t, [][2]float64{{100, 0}, {120, 1000}}, memPanel.SnapshotData[0].Datapoints)

	// Snapshot panels carry no query targets.
	assert.Empty(t, cpuPanel.Targets)
}

func TestResourcePanelsReflectSeriesShape(t *testing.T) {
	makeResult := func(cpu []float64) *report.Result {
		return &report.Result{
			Name:        "nginx",
			TimestampsS: []float64{0, 1, 2},
			CPUPercent:  cpu,
			MemoryMB:    []float64{100, 100, 100},
		}
	}
	// Same mean CPU, very different timelines.
	steady := []*report.Result{makeResult([]float64{50, 50, 50})}
	spiky := []*report.Result{makeResult([]float64{0, 150, 0})}

	steadyJSON, err := json.Marshal(BuildDashboard(steady, DefaultStyles(), "b"))
	require.NoError(t, err)
	spikyJSON, err := json.Marshal(BuildDashboard(spiky, DefaultStyles(), "b"))
	require.NoError(t, err)

	assert.NotEqual(t, steadyJSON, spikyJSON)
	assert.Contains(t, string(spikyJSON), "150")
}

func TestWriteDashboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dashboard.json")
	dash := BuildDashboard(sampleBatch(true), DefaultStyles(), "b")

	require.NoError(t, WriteDashboard(path, dash))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "dashboard")
}
