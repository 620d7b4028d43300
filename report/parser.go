package report

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// wrk prints each metric at most once; the first match in document order is
// the one honored when a label happens to appear again in free text.
var (
	requestsPerSecRe = regexp.MustCompile(`Requests/sec:\s+([\d.]+)`)
	transferPerSecRe = regexp.MustCompile(`Transfer/sec:\s+([\d.]+)([KMG]B)`)
	avgLatencyRe     = regexp.MustCompile(`Latency\s+([\d.]+)(\w+)`)
	p50Re            = regexp.MustCompile(`50%\s+([\d.]+)(\w+)`)
	p75Re            = regexp.MustCompile(`75%\s+([\d.]+)(\w+)`)
	p90Re            = regexp.MustCompile(`90%\s+([\d.]+)(\w+)`)
	p99Re            = regexp.MustCompile(`99%\s+([\d.]+)(\w+)`)
	totalRequestsRe  = regexp.MustCompile(`([\d.]+)([KM])?\s+requests in`)
)

// SubjectFromPath derives the subject identifier from a result file path:
// the first underscore-delimited token of the base name, e.g.
// results/nginx_fibonacci_20240102_000000.txt -> nginx. No validation
// against a known subject set happens here.
func SubjectFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}

// ParseReport extracts the labeled metrics from one wrk report and
// normalizes each to its canonical unit. A label that does not appear
// leaves its field at zero; that is not an error.
func ParseReport(name, text string) *Result {
	r := &Result{Name: name}

	if m := requestsPerSecRe.FindStringSubmatch(text); m != nil {
		r.RequestsPerSec = parseFloat(m[1])
	}

	if m := transferPerSecRe.FindStringSubmatch(text); m != nil {
		r.TransferPerSecMB = toMegabytes(parseFloat(m[1]), m[2])
	}

	if m := avgLatencyRe.FindStringSubmatch(text); m != nil {
		r.AvgLatencyMs = toMilliseconds(parseFloat(m[1]), m[2])
	}

	for _, p := range []struct {
		re  *regexp.Regexp
		dst *float64
	}{
		{p50Re, &r.P50Ms},
		{p75Re, &r.P75Ms},
		{p90Re, &r.P90Ms},
		{p99Re, &r.P99Ms},
	} {
		if m := p.re.FindStringSubmatch(text); m != nil {
			*p.dst = toMilliseconds(parseFloat(m[1]), m[2])
		}
	}

	if m := totalRequestsRe.FindStringSubmatch(text); m != nil {
		r.TotalRequests = toCount(parseFloat(m[1]), m[2])
	}

	return r
}

// LoadResult reads one report file, parses its scalar metrics and attaches
// the paired time-series log if one exists next to it. An unreadable report
// file is fatal for this record only; a missing or malformed metrics file
// just leaves the series empty.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading report %s", path)
	}

	r := ParseReport(SubjectFromPath(path), string(data))

	metricsPath := strings.TrimSuffix(path, ".txt") + "_metrics.csv"
	r.TimestampsS, r.CPUPercent, r.MemoryMB = LoadMetrics(metricsPath)

	return r, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.WithError(err).Warnf("unparseable numeric token %q", s)
		return 0
	}
	return v
}

// toMegabytes converts a transfer rate with a KB/MB/GB suffix to megabytes.
func toMegabytes(v float64, unit string) float64 {
	switch unit {
	case "KB":
		return v / 1024
	case "GB":
		return v * 1024
	default:
		return v
	}
}

// toMilliseconds converts a latency with a us/ms/s suffix to milliseconds.
func toMilliseconds(v float64, unit string) float64 {
	switch unit {
	case "us":
		return v / 1000
	case "s":
		return v * 1000
	default:
		return v
	}
}

// toCount expands a K/M magnitude suffix into an integer count.
func toCount(v float64, unit string) int64 {
	switch unit {
	case "K":
		v *= 1000
	case "M":
		v *= 1000000
	}
	return int64(v)
}
