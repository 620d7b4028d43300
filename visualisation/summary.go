package visualisation

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"proxybench/report"
)

// PrintSummary renders the console comparison table for one batch: one
// column per subject, one row per normalized metric, followed by resource
// averages and the per-category winners.
func PrintSummary(w io.Writer, batch string, results []*report.Result) {
	title := "BENCHMARK RESULTS SUMMARY"
	if batch != "" {
		title += " " + batch
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)

	header := []string{"Metric"}
	for _, r := range results {
		header = append(header, capitalize(r.Name))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)

	metrics := []struct {
		name  string
		value func(*report.Result) string
	}{
		{"Requests/sec", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.RequestsPerSec) }},
		{"Transfer/sec (MB)", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.TransferPerSecMB) }},
		{"Avg Latency (ms)", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.AvgLatencyMs) }},
		{"50th Percentile (ms)", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.P50Ms) }},
		{"75th Percentile (ms)", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.P75Ms) }},
		{"90th Percentile (ms)", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.P90Ms) }},
		{"99th Percentile (ms)", func(r *report.Result) string { return fmt.Sprintf("%.2f", r.P99Ms) }},
		{"Total Requests", func(r *report.Result) string { return fmt.Sprintf("%d", r.TotalRequests) }},
	}

	for _, m := range metrics {
		row := []string{m.name}
		for _, r := range results {
			row = append(row, m.value(r))
		}
		table.Append(row)
	}
	table.Render()

	if report.AnyResourceData(results) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Resource Usage (Average)")
		for _, r := range results {
			if !r.HasResourceData() {
				continue
			}
			fmt.Fprintf(w, "  %-12s CPU: %6.2f%%   Memory: %8.2f MB\n",
				capitalize(r.Name), r.MeanCPU(), r.MeanMemoryMB())
		}
	}

	fmt.Fprintln(w)
	if best := report.HighestThroughput(results); best != nil {
		fmt.Fprintf(w, "Highest Throughput: %s (%.2f req/s)\n", strings.ToUpper(best.Name), best.RequestsPerSec)
	}
	if best := report.LowestLatency(results); best != nil {
		fmt.Fprintf(w, "Lowest Latency:     %s (%.2f ms)\n", strings.ToUpper(best.Name), best.AvgLatencyMs)
	}
	if best := report.LowestMeanCPU(results); best != nil {
		fmt.Fprintf(w, "Lowest CPU Usage:   %s (%.2f%%)\n", strings.ToUpper(best.Name), best.MeanCPU())
	}
	if best := report.LowestMeanMemory(results); best != nil {
		fmt.Fprintf(w, "Lowest Memory:      %s (%.2f MB)\n", strings.ToUpper(best.Name), best.MeanMemoryMB())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
