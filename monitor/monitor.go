package monitor

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Sample is one resource-usage observation. The CSV recorder turns a stream
// of these into the metrics log that gets paired with a wrk report.
type Sample struct {
	Timestamp  time.Time
	CPUPercent float64
	MemoryMB   float64
}

// Monitor samples system CPU and memory usage from /proc. CPU usage is
// computed from the delta between consecutive samples; the first sample
// falls back to the cumulative ratio since boot.
type Monitor struct {
	statPath    string
	meminfoPath string
	prev        *cpuTimes
}

type cpuTimes struct {
	used  int64
	total int64
}

// New creates a monitor reading the standard /proc locations.
func New() *Monitor {
	return &Monitor{
		statPath:    "/proc/stat",
		meminfoPath: "/proc/meminfo",
	}
}

// Sample takes one observation.
func (m *Monitor) Sample() (Sample, error) {
	now := time.Now()

	cur, err := m.readCPUTimes()
	if err != nil {
		return Sample{}, err
	}

	ref := &cpuTimes{}
	if m.prev != nil {
		ref = m.prev
	}
	var cpu float64
	if dt := cur.total - ref.total; dt > 0 {
		cpu = float64(cur.used-ref.used) / float64(dt) * 100
	}
	m.prev = cur

	mem, err := m.readMemoryMB()
	if err != nil {
		return Sample{}, err
	}

	return Sample{Timestamp: now, CPUPercent: cpu, MemoryMB: mem}, nil
}

func (m *Monitor) readCPUTimes() (*cpuTimes, error) {
	f, err := os.Open(m.statPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening cpu stats")
	}
	defer f.Close()
	return parseCPUTimes(f)
}

func (m *Monitor) readMemoryMB() (float64, error) {
	f, err := os.Open(m.meminfoPath)
	if err != nil {
		return 0, errors.Wrap(err, "opening meminfo")
	}
	defer f.Close()
	return parseMemoryMB(f)
}

// parseCPUTimes reads the aggregate "cpu" line of /proc/stat.
func parseCPUTimes(r io.Reader) (*cpuTimes, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}
		user, _ := strconv.ParseInt(fields[1], 10, 64)
		nice, _ := strconv.ParseInt(fields[2], 10, 64)
		system, _ := strconv.ParseInt(fields[3], 10, 64)
		idle, _ := strconv.ParseInt(fields[4], 10, 64)

		return &cpuTimes{
			used:  user + nice + system,
			total: user + nice + system + idle,
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning cpu stats")
	}
	return nil, errors.New("no aggregate cpu line found")
}

// parseMemoryMB computes used memory in MB from /proc/meminfo, where values
// are reported in kB.
func parseMemoryMB(r io.Reader) (float64, error) {
	scanner := bufio.NewScanner(r)
	var total, available int64
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			total, _ = strconv.ParseInt(fields[1], 10, 64)
		case strings.HasPrefix(line, "MemAvailable:"):
			available, _ = strconv.ParseInt(fields[1], 10, 64)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrap(err, "scanning meminfo")
	}
	if total == 0 {
		return 0, errors.New("no MemTotal line found")
	}
	return float64(total-available) / 1024, nil
}
