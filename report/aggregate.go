package report

// MeanCPU returns the simple mean of the CPU series, or 0 when the record
// carries no resource data.
func (r *Result) MeanCPU() float64 {
	return mean(r.CPUPercent)
}

// MeanMemoryMB returns the simple mean of the memory series, or 0 when the
// record carries no resource data.
func (r *Result) MeanMemoryMB() float64 {
	return mean(r.MemoryMB)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// AnyResourceData reports whether at least one record in the batch has a
// populated time-series; when none has, resource aggregation and resource
// charts are skipped entirely.
func AnyResourceData(results []*Result) bool {
	for _, r := range results {
		if r.HasResourceData() {
			return true
		}
	}
	return false
}

// HighestThroughput returns the record with the most requests per second,
// or nil for an empty batch.
func HighestThroughput(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if best == nil || r.RequestsPerSec > best.RequestsPerSec {
			best = r
		}
	}
	return best
}

// LowestLatency returns the record with the lowest average latency, or nil
// for an empty batch.
func LowestLatency(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if best == nil || r.AvgLatencyMs < best.AvgLatencyMs {
			best = r
		}
	}
	return best
}

// LowestMeanCPU returns the record with the lowest mean CPU usage among
// those that have resource data, or nil when none has.
func LowestMeanCPU(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if !r.HasResourceData() {
			continue
		}
		if best == nil || r.MeanCPU() < best.MeanCPU() {
			best = r
		}
	}
	return best
}

// LowestMeanMemory returns the record with the lowest mean memory usage
// among those that have resource data, or nil when none has.
func LowestMeanMemory(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if !r.HasResourceData() {
			continue
		}
		if best == nil || r.MeanMemoryMB() < best.MeanMemoryMB() {
			best = r
		}
	}
	return best
}
