package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// runAtLayout is the fixed header timestamp pattern. Timestamps render in
// UTC so that a report is reproducible from a captured results file.
const runAtLayout = "Mon 02 Jan 2006, 15:04"

// Compose renders the complete markdown report for one run: metadata
// header, then every present section in canonical order with its overview
// table and (for sized sections) per-key detail tables.
//
// Compose is a pure function of the run. It never mutates the tree, and on
// any formatting or schema violation it returns an empty document together
// with an error naming the offending section/key/loop/field path; a partial
// report is never returned.
func Compose(run *results.Run) (string, error) {
	renderer := NewRenderer()
	blocks := []string{header(run)}

	for _, plan := range Select(run.Results) {
		sec := run.Results[plan.Section.Key]

		overview, err := renderer.Overview(sec, plan.Keys)
		if err != nil {
			return "", fmt.Errorf("section %s: overview: %w", plan.Section.Key, err)
		}
		blocks = append(blocks,
			"### "+plan.Section.Title+"\n",
			plan.Section.Description+"\n",
			"### Overview\n",
			overview,
		)

		if !plan.Section.Details {
			continue
		}
		for _, key := range plan.Keys {
			detail, err := renderer.Detail(sec[key])
			if err != nil {
				return "", fmt.Errorf("section %s: key %s: %w", plan.Section.Key, key, err)
			}
			blocks = append(blocks,
				fmt.Sprintf("#### %s Details\n", key),
				detail,
			)
		}
	}

	return strings.Join(blocks, "\n"), nil
}

func header(run *results.Run) string {
	runAt := time.Unix(run.RunAt, 0).UTC().Format(runAtLayout)

	var b strings.Builder
	b.WriteString("# Veloxloop Benchmarks\n\n")
	fmt.Fprintf(&b, "Run at: %s\n", runAt)
	fmt.Fprintf(&b, "Environment: %s (CPUs: %d)\n", run.Env, run.CPU)
	fmt.Fprintf(&b, "Python version: %s\n", run.PyVer)
	fmt.Fprintf(&b, "Veloxloop version: %s\n", run.Veloxloop)
	return b.String()
}
