package report

// Result is the normalized summary of one subject's benchmark run. Scalar
// metrics are unit-consistent (megabytes, milliseconds) regardless of the
// suffix used in the source report. The three series are index-aligned:
// sample i of each describes the same instant, with TimestampsS relative to
// the first sample. A Result either has all three series populated or all
// three empty.
type Result struct {
	Name string

	RequestsPerSec   float64
	TransferPerSecMB float64
	AvgLatencyMs     float64
	P50Ms            float64
	P75Ms            float64
	P90Ms            float64
	P99Ms            float64
	TotalRequests    int64

	TimestampsS []float64
	CPUPercent  []float64
	MemoryMB    []float64
}

// HasResourceData reports whether the paired time-series log was available
// for this run. Consumers must skip resource aggregation for results
// without it.
func (r *Result) HasResourceData() bool {
	return len(r.TimestampsS) > 0 && len(r.CPUPercent) > 0 && len(r.MemoryMB) > 0
}
