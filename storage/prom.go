package storage

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"proxybench/report"
)

// Exporter publishes a parsed benchmark batch as Prometheus gauges so the
// comparison dashboard can query it. Values are set once per batch; this is
// not a live ingestion path.
type Exporter struct {
	registry *prometheus.Registry

	requestsPerSec *prometheus.GaugeVec
	transferMB     *prometheus.GaugeVec
	latencyMs      *prometheus.GaugeVec
	totalRequests  *prometheus.GaugeVec
	cpuPercent     *prometheus.GaugeVec
	memoryMB       *prometheus.GaugeVec
}

// NewExporter creates an exporter and registers its metrics with reg. The
// registry is kept so the scrape handler serves exactly these metrics.
func NewExporter(reg *prometheus.Registry) *Exporter {
	e := &Exporter{
		registry: reg,
		requestsPerSec: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proxybench_requests_per_sec",
				Help: "Requests per second from the benchmark report",
			},
			[]string{"subject", "batch"},
		),
		transferMB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proxybench_transfer_mb_per_sec",
				Help: "Transfer rate in MB/s from the benchmark report",
			},
			[]string{"subject", "batch"},
		),
		latencyMs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proxybench_latency_ms",
				Help: "Normalized latency in milliseconds by quantile",
			},
			[]string{"subject", "batch", "quantile"},
		),
		totalRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proxybench_requests_total",
				Help: "Total requests completed during the benchmark run",
			},
			[]string{"subject", "batch"},
		),
		cpuPercent: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proxybench_mean_cpu_percent",
				Help: "Mean CPU usage over the benchmark run",
			},
			[]string{"subject", "batch"},
		),
		memoryMB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proxybench_mean_memory_mb",
				Help: "Mean memory usage in MB over the benchmark run",
			},
			[]string{"subject", "batch"},
		),
	}

	reg.MustRegister(
		e.requestsPerSec,
		e.transferMB,
		e.latencyMs,
		e.totalRequests,
		e.cpuPercent,
		e.memoryMB,
	)

	return e
}

// Publish sets every gauge from the normalized batch. Records without
// resource data skip the cpu/memory gauges.
func (e *Exporter) Publish(batch string, results []*report.Result) {
	for _, r := range results {
		e.requestsPerSec.WithLabelValues(r.Name, batch).Set(r.RequestsPerSec)
		e.transferMB.WithLabelValues(r.Name, batch).Set(r.TransferPerSecMB)
		e.totalRequests.WithLabelValues(r.Name, batch).Set(float64(r.TotalRequests))

		e.latencyMs.WithLabelValues(r.Name, batch, "avg").Set(r.AvgLatencyMs)
		e.latencyMs.WithLabelValues(r.Name, batch, "0.50").Set(r.P50Ms)
		e.latencyMs.WithLabelValues(r.Name, batch, "0.75").Set(r.P75Ms)
		e.latencyMs.WithLabelValues(r.Name, batch, "0.90").Set(r.P90Ms)
		e.latencyMs.WithLabelValues(r.Name, batch, "0.99").Set(r.P99Ms)

		if r.HasResourceData() {
			e.cpuPercent.WithLabelValues(r.Name, batch).Set(r.MeanCPU())
			e.memoryMB.WithLabelValues(r.Name, batch).Set(r.MeanMemoryMB())
		}
	}
}

// Handler returns the scrape handler for the exporter's own registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr. Blocks until the server fails.
func (e *Exporter) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	return errors.Wrap(http.ListenAndServe(addr, mux), "metrics server stopped")
}
