package harness

import (
	"sort"
	"time"

	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// Summarize reduces raw per-request latencies to the record the report
// consumes: requests per second plus mean/p99/min/max in milliseconds.
func Summarize(latencies []time.Duration, elapsed time.Duration) results.Record {
	if len(latencies) == 0 || elapsed <= 0 {
		return results.Record{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var total time.Duration
	for _, l := range sorted {
		total += l
	}

	n := len(sorted)
	return results.Record{
		RPS:  float64(n) / elapsed.Seconds(),
		Mean: millis(total / time.Duration(n)),
		P99:  millis(sorted[n*99/100]),
		Min:  millis(sorted[0]),
		Max:  millis(sorted[n-1]),
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
