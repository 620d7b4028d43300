package monitor

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// CSVRecorder appends samples to a metrics log in the format the analyzer
// pairs with each wrk report: a header row followed by
// timestamp,cpu_percent,memory_mb samples.
type CSVRecorder struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVRecorder creates the metrics file and writes its header.
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating metrics file %s", path)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "cpu_percent", "memory_mb"}); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "writing metrics header")
	}

	return &CSVRecorder{file: f, writer: w}, nil
}

// Record appends one sample. Timestamps are absolute unix seconds; the
// analyzer rebases them to the first sample.
func (r *CSVRecorder) Record(s Sample) error {
	row := []string{
		strconv.FormatFloat(float64(s.Timestamp.UnixMilli())/1000, 'f', 3, 64),
		strconv.FormatFloat(s.CPUPercent, 'f', 2, 64),
		strconv.FormatFloat(s.MemoryMB, 'f', 2, 64),
	}
	if err := r.writer.Write(row); err != nil {
		return errors.Wrap(err, "writing metrics row")
	}
	r.writer.Flush()
	return errors.Wrap(r.writer.Error(), "flushing metrics row")
}

// Close flushes and closes the metrics file.
func (r *CSVRecorder) Close() error {
	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		r.file.Close()
		return errors.Wrap(err, "flushing metrics file")
	}
	return errors.Wrap(r.file.Close(), "closing metrics file")
}
