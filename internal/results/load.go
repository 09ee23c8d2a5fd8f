package results

import (
	"encoding/json"
	"fmt"
	"os"
)

// SchemaError reports a result file whose shape violates the wire contract.
// Path identifies the offending node (section/key/loop/field).
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("results schema: %s: %s", e.Path, e.Reason)
}

// metricFields are required on every record, in wire order.
var metricFields = []string{"rps", "mean", "p99", "min", "max"}

// Parse decodes and validates a captured results document. A record missing
// any metric field is a SchemaError; absent sections or configuration keys
// are fine and simply omitted from the report.
func Parse(data []byte) (*Run, error) {
	var raw struct {
		RunAt     *int64                                           `json:"run_at"`
		CPU       int                                              `json:"cpu"`
		Env       string                                           `json:"env"`
		PyVer     string                                           `json:"pyver"`
		Veloxloop string                                           `json:"veloxloop"`
		RunID     string                                           `json:"run_id"`
		Results   map[string]map[string]map[string]json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Path: "$", Reason: err.Error()}
	}
	if raw.RunAt == nil {
		return nil, &SchemaError{Path: "run_at", Reason: "missing"}
	}

	run := &Run{
		RunAt:     *raw.RunAt,
		CPU:       raw.CPU,
		Env:       raw.Env,
		PyVer:     raw.PyVer,
		Veloxloop: raw.Veloxloop,
		RunID:     raw.RunID,
		Results:   make(Tree, len(raw.Results)),
	}

	for section, keys := range raw.Results {
		sec := make(SectionResults, len(keys))
		for key, loops := range keys {
			kr := make(KeyResults, len(loops))
			for loop, msg := range loops {
				path := fmt.Sprintf("%s/%s/%s", section, key, loop)
				rec, err := parseRecord(path, msg)
				if err != nil {
					return nil, err
				}
				kr[loop] = rec
			}
			sec[key] = kr
		}
		run.Results[section] = sec
	}

	return run, nil
}

func parseRecord(path string, msg json.RawMessage) (Record, error) {
	var fields map[string]*float64
	if err := json.Unmarshal(msg, &fields); err != nil {
		return Record{}, &SchemaError{Path: path, Reason: "record is not an object of numbers"}
	}
	for _, name := range metricFields {
		if v, ok := fields[name]; !ok || v == nil {
			return Record{}, &SchemaError{Path: path + "/" + name, Reason: "missing metric field"}
		}
	}
	return Record{
		RPS:  *fields["rps"],
		Mean: *fields["mean"],
		P99:  *fields["p99"],
		Min:  *fields["min"],
		Max:  *fields["max"],
	}, nil
}

// LoadFile reads and parses a results document from disk.
func LoadFile(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	return Parse(data)
}
