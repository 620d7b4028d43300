package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ParseMetrics reads a resource-usage log: a header row naming at least
// timestamp, cpu_percent and memory_mb, followed by one sample per row in
// chronological order. The first row's timestamp becomes the zero point and
// every timestamp is emitted relative to it. A malformed row aborts the
// whole parse; the caller decides what that means for the record.
func ParseMetrics(r io.Reader) (timestamps, cpu, memory []float64, err error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading metrics header")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	tsCol, ok1 := cols["timestamp"]
	cpuCol, ok2 := cols["cpu_percent"]
	memCol, ok3 := cols["memory_mb"]
	if !ok1 || !ok2 || !ok3 {
		return nil, nil, nil, errors.Errorf("metrics header missing required columns: %v", header)
	}

	var start float64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "reading metrics row")
		}

		ts, err := strconv.ParseFloat(row[tsCol], 64)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "parsing timestamp %q", row[tsCol])
		}
		c, err := strconv.ParseFloat(row[cpuCol], 64)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "parsing cpu_percent %q", row[cpuCol])
		}
		m, err := strconv.ParseFloat(row[memCol], 64)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "parsing memory_mb %q", row[memCol])
		}

		if len(timestamps) == 0 {
			start = ts
		}
		timestamps = append(timestamps, ts-start)
		cpu = append(cpu, c)
		memory = append(memory, m)
	}

	return timestamps, cpu, memory, nil
}

// LoadMetrics reads the paired time-series file for a report. A missing or
// malformed file is recoverable: the three series come back empty and the
// record simply carries no resource data.
func LoadMetrics(path string) (timestamps, cpu, memory []float64) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("no metrics file %s, skipping resource data", path)
		} else {
			log.WithError(err).Warnf("cannot open metrics file %s", path)
		}
		return nil, nil, nil
	}
	defer f.Close()

	timestamps, cpu, memory, err = ParseMetrics(f)
	if err != nil {
		log.WithError(err).Warnf("discarding metrics file %s", path)
		return nil, nil, nil
	}
	return timestamps, cpu, memory
}
