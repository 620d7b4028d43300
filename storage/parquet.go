package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"proxybench/report"
)

// resultRow is the flat Parquet schema for one normalized benchmark result.
// The resource series stay out of the row; they are per-sample data, not
// per-run scalars.
type resultRow struct {
	Name             string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Batch            string  `parquet:"name=batch, type=BYTE_ARRAY, convertedtype=UTF8"`
	RequestsPerSec   float64 `parquet:"name=requests_per_sec, type=DOUBLE"`
	TransferPerSecMB float64 `parquet:"name=transfer_per_sec_mb, type=DOUBLE"`
	AvgLatencyMs     float64 `parquet:"name=avg_latency_ms, type=DOUBLE"`
	P50Ms            float64 `parquet:"name=p50_ms, type=DOUBLE"`
	P75Ms            float64 `parquet:"name=p75_ms, type=DOUBLE"`
	P90Ms            float64 `parquet:"name=p90_ms, type=DOUBLE"`
	P99Ms            float64 `parquet:"name=p99_ms, type=DOUBLE"`
	TotalRequests    int64   `parquet:"name=total_requests, type=INT64"`
	MeanCPUPercent   float64 `parquet:"name=mean_cpu_percent, type=DOUBLE"`
	MeanMemoryMB     float64 `parquet:"name=mean_memory_mb, type=DOUBLE"`
}

// ResultWriter persists normalized benchmark results to a Parquet file.
type ResultWriter struct {
	writer   *writer.ParquetWriter
	file     source.ParquetFile
	filePath string
	batch    string
}

// NewResultWriter creates a Parquet file for one batch under outputDir.
func NewResultWriter(outputDir, batch string) (*ResultWriter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	fileName := "proxybench.parquet"
	if batch != "" {
		fileName = fmt.Sprintf("proxybench-%s.parquet", batch)
	}
	filePath := filepath.Join(outputDir, fileName)

	file, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "creating parquet file")
	}

	pw, err := writer.NewParquetWriter(file, new(resultRow), 4)
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "creating parquet writer")
	}

	return &ResultWriter{
		writer:   pw,
		file:     file,
		filePath: filePath,
		batch:    batch,
	}, nil
}

// WriteResult appends one result to the file.
func (rw *ResultWriter) WriteResult(r *report.Result) error {
	row := resultRow{
		Name:             r.Name,
		Batch:            rw.batch,
		RequestsPerSec:   r.RequestsPerSec,
		TransferPerSecMB: r.TransferPerSecMB,
		AvgLatencyMs:     r.AvgLatencyMs,
		P50Ms:            r.P50Ms,
		P75Ms:            r.P75Ms,
		P90Ms:            r.P90Ms,
		P99Ms:            r.P99Ms,
		TotalRequests:    r.TotalRequests,
		MeanCPUPercent:   r.MeanCPU(),
		MeanMemoryMB:     r.MeanMemoryMB(),
	}
	if err := rw.writer.Write(row); err != nil {
		return errors.Wrapf(err, "writing result for %s", r.Name)
	}
	return nil
}

// Close finalizes the Parquet footer and closes the file.
func (rw *ResultWriter) Close() error {
	if err := rw.writer.WriteStop(); err != nil {
		return errors.Wrap(err, "finalizing parquet file")
	}
	if err := rw.file.Close(); err != nil {
		return errors.Wrap(err, "closing parquet file")
	}
	return nil
}

// FilePath returns the path of the written file.
func (rw *ResultWriter) FilePath() string {
	return rw.filePath
}

// WriteBatch writes a whole batch of results and returns the file path.
func WriteBatch(outputDir, batch string, results []*report.Result) (string, error) {
	rw, err := NewResultWriter(outputDir, batch)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		if err := rw.WriteResult(r); err != nil {
			rw.Close()
			return "", err
		}
	}
	if err := rw.Close(); err != nil {
		return "", err
	}
	return rw.FilePath(), nil
}
