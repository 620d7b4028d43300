package visualisation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"proxybench/report"
)

// Dashboard is the payload the Grafana import API expects.
type Dashboard struct {
	Dashboard DashboardConfig `json:"dashboard"`
	FolderID  int             `json:"folderId"`
	Overwrite bool            `json:"overwrite"`
}

// DashboardConfig holds the dashboard definition.
type DashboardConfig struct {
	ID            interface{} `json:"id"`
	Title         string      `json:"title"`
	Tags          []string    `json:"tags"`
	Style         string      `json:"style"`
	Timezone      string      `json:"timezone"`
	Panels        []Panel     `json:"panels"`
	Time          TimeRange   `json:"time"`
	Refresh       string      `json:"refresh"`
	SchemaVersion int         `json:"schemaVersion"`
	Version       int         `json:"version"`
}

// Panel is one chart on the dashboard. Scalar comparison panels carry query
// targets; the resource timeline panels embed their samples directly as
// snapshot frames.
type Panel struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Type         string          `json:"type"`
	GridPos      GridPos         `json:"gridPos"`
	Targets      []Target        `json:"targets,omitempty"`
	SnapshotData []SnapshotFrame `json:"snapshotData,omitempty"`
	FieldConfig  FieldConfig     `json:"fieldConfig"`
}

// GridPos places a panel on the dashboard grid.
type GridPos struct {
	H int `json:"h"`
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Target is one query feeding a panel.
type Target struct {
	Expr         string `json:"expr"`
	LegendFormat string `json:"legendFormat,omitempty"`
	RefID        string `json:"refId"`
}

// SnapshotFrame is one static series embedded in a panel, in Grafana's
// snapshot format: each datapoint is a [value, epoch-milliseconds] pair.
type SnapshotFrame struct {
	Target     string       `json:"target"`
	Datapoints [][2]float64 `json:"datapoints"`
}

// FieldConfig carries display defaults plus per-series overrides.
type FieldConfig struct {
	Defaults  Defaults   `json:"defaults"`
	Overrides []Override `json:"overrides"`
}

// Defaults are the display settings applied to every series of a panel.
type Defaults struct {
	Color  Color   `json:"color"`
	Custom *Custom `json:"custom,omitempty"`
	Unit   string  `json:"unit"`
}

// Color selects the color mode for a panel.
type Color struct {
	Mode string `json:"mode"`
}

// Custom holds timeseries draw settings.
type Custom struct {
	DrawStyle   string `json:"drawStyle"`
	FillOpacity int    `json:"fillOpacity"`
	LineWidth   int    `json:"lineWidth"`
	ShowPoints  string `json:"showPoints"`
	SpanNulls   bool   `json:"spanNulls"`
}

// Override restyles the series matched by name.
type Override struct {
	Matcher    Matcher    `json:"matcher"`
	Properties []Property `json:"properties"`
}

// Matcher selects which series an override applies to.
type Matcher struct {
	ID      string `json:"id"`
	Options string `json:"options"`
}

// Property is one overridden display setting.
type Property struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// TimeRange is the dashboard's default time window.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BuildDashboard assembles the comparison dashboard for one parsed batch:
// throughput and average-latency bar gauges, grouped latency percentiles,
// and, when at least one record carries resource data, CPU and memory
// timeline panels fed by the parsed per-sample series and styled per
// subject.
func BuildDashboard(results []*report.Result, styles *StyleMap, batch string) *Dashboard {
	batchSel := fmt.Sprintf(`batch=%q`, batch)

	panels := []Panel{
		{
			ID:      1,
			Title:   "Throughput (req/s)",
			Type:    "bargauge",
			GridPos: GridPos{H: 8, W: 12, X: 0, Y: 0},
			Targets: []Target{
				{
					Expr:         fmt.Sprintf(`proxybench_requests_per_sec{%s}`, batchSel),
					LegendFormat: "{{subject}}",
					RefID:        "A",
				},
			},
			FieldConfig: FieldConfig{
				Defaults:  Defaults{Color: Color{Mode: "palette-classic"}, Unit: "reqps"},
				Overrides: subjectOverrides(results, styles, false),
			},
		},
		{
			ID:      2,
			Title:   "Average Latency (ms)",
			Type:    "bargauge",
			GridPos: GridPos{H: 8, W: 12, X: 12, Y: 0},
			Targets: []Target{
				{
					Expr:         fmt.Sprintf(`proxybench_latency_ms{quantile="avg",%s}`, batchSel),
					LegendFormat: "{{subject}}",
					RefID:        "A",
				},
			},
			FieldConfig: FieldConfig{
				Defaults:  Defaults{Color: Color{Mode: "palette-classic"}, Unit: "ms"},
				Overrides: subjectOverrides(results, styles, false),
			},
		},
		{
			ID:      3,
			Title:   "Latency Percentiles (ms)",
			Type:    "barchart",
			GridPos: GridPos{H: 8, W: 24, X: 0, Y: 8},
			Targets: []Target{
				{Expr: fmt.Sprintf(`proxybench_latency_ms{quantile="0.50",%s}`, batchSel), LegendFormat: "50th {{subject}}", RefID: "A"},
				{Expr: fmt.Sprintf(`proxybench_latency_ms{quantile="0.75",%s}`, batchSel), LegendFormat: "75th {{subject}}", RefID: "B"},
				{Expr: fmt.Sprintf(`proxybench_latency_ms{quantile="0.90",%s}`, batchSel), LegendFormat: "90th {{subject}}", RefID: "C"},
				{Expr: fmt.Sprintf(`proxybench_latency_ms{quantile="0.99",%s}`, batchSel), LegendFormat: "99th {{subject}}", RefID: "D"},
			},
			FieldConfig: FieldConfig{
				Defaults: Defaults{Color: Color{Mode: "palette-classic"}, Unit: "ms"},
			},
		},
	}

	if report.AnyResourceData(results) {
		timeseriesCustom := &Custom{
			DrawStyle:   "line",
			FillOpacity: 10,
			LineWidth:   2,
			ShowPoints:  "never",
		}
		panels = append(panels,
			Panel{
				ID:           4,
				Title:        "CPU Usage (%)",
				Type:         "timeseries",
				GridPos:      GridPos{H: 8, W: 12, X: 0, Y: 16},
				SnapshotData: resourceFrames(results, func(r *report.Result) []float64 { return r.CPUPercent }),
				FieldConfig: FieldConfig{
					Defaults:  Defaults{Color: Color{Mode: "palette-classic"}, Custom: timeseriesCustom, Unit: "percent"},
					Overrides: subjectOverrides(results, styles, true),
				},
			},
			Panel{
				ID:           5,
				Title:        "Memory Usage (MB)",
				Type:         "timeseries",
				GridPos:      GridPos{H: 8, W: 12, X: 12, Y: 16},
				SnapshotData: resourceFrames(results, func(r *report.Result) []float64 { return r.MemoryMB }),
				FieldConfig: FieldConfig{
					Defaults:  Defaults{Color: Color{Mode: "palette-classic"}, Custom: timeseriesCustom, Unit: "mbytes"},
					Overrides: subjectOverrides(results, styles, true),
				},
			},
		)
	}

	return &Dashboard{
		Dashboard: DashboardConfig{
			ID:            nil,
			Title:         fmt.Sprintf("Reverse Proxy Benchmark %s", batch),
			Tags:          []string{"proxybench", "benchmark"},
			Style:         "dark",
			Timezone:      "browser",
			Panels:        panels,
			Time:          TimeRange{From: "now-1h", To: "now"},
			Refresh:       "",
			SchemaVersion: 30,
			Version:       1,
		},
		Overwrite: true,
	}
}

// resourceFrames turns one parsed resource series per subject into snapshot
// frames. Relative-second timestamps become millisecond offsets so every
// subject's timeline starts at zero. Records without resource data are
// skipped.
func resourceFrames(results []*report.Result, series func(*report.Result) []float64) []SnapshotFrame {
	var frames []SnapshotFrame
	for _, r := range results {
		if !r.HasResourceData() {
			continue
		}
		values := series(r)
		points := make([][2]float64, len(values))
		for i, v := range values {
			points[i] = [2]float64{v, r.TimestampsS[i] * 1000}
		}
		frames = append(frames, SnapshotFrame{Target: r.Name, Datapoints: points})
	}
	return frames
}

// subjectOverrides fixes the color of every subject's series, plus its dash
// pattern on line panels.
func subjectOverrides(results []*report.Result, styles *StyleMap, withDash bool) []Override {
	overrides := make([]Override, 0, len(results))
	for _, r := range results {
		style := styles.For(r.Name)
		props := []Property{
			{
				ID:    "color",
				Value: map[string]interface{}{"mode": "fixed", "fixedColor": style.Color},
			},
		}
		if withDash && len(style.Dash) > 0 {
			props = append(props, Property{
				ID:    "custom.lineStyle",
				Value: map[string]interface{}{"fill": "dash", "dash": style.Dash},
			})
		}
		overrides = append(overrides, Override{
			Matcher:    Matcher{ID: "byName", Options: r.Name},
			Properties: props,
		})
	}
	return overrides
}

// WriteDashboard marshals the dashboard to path, creating the parent
// directory if needed.
func WriteDashboard(path string, dash *Dashboard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating dashboard directory")
	}
	data, err := json.MarshalIndent(dash, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling dashboard")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing dashboard %s", path)
}
