package results

// Record holds the pre-computed metrics for one loop under one configuration.
// Latencies are milliseconds; the harness computes them, the report only
// formats them.
type Record struct {
	RPS  float64 `json:"rps"`
	Mean float64 `json:"mean"`
	P99  float64 `json:"p99"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// KeyResults maps loop name to its record for one configuration key.
type KeyResults map[string]Record

// SectionResults maps configuration key (message size or concurrency level,
// as a string) to the per-loop records measured under it.
type SectionResults map[string]KeyResults

// Tree is the full nested result structure: section key -> configuration
// key -> loop name -> record. Any section may be absent; absence means the
// section is omitted from the report.
type Tree map[string]SectionResults

// Run is one complete benchmark run: metadata plus the result tree.
// It is built once by the harness (or loaded from a captured JSON file)
// and consumed read-only by the report composer.
type Run struct {
	RunAt     int64  `json:"run_at"` // epoch seconds
	CPU       int    `json:"cpu"`
	Env       string `json:"env"`
	PyVer     string `json:"pyver"`
	Veloxloop string `json:"veloxloop"`
	RunID     string `json:"run_id,omitempty"`
	Results   Tree   `json:"results"`
}

// Records returns the per-loop records for a section/key pair, or nil when
// either level is absent.
func (t Tree) Records(section, key string) KeyResults {
	sec, ok := t[section]
	if !ok {
		return nil
	}
	return sec[key]
}
