package report

import "github.com/DVNghiem/veloxloop-bench/internal/results"

// Loops is the declared loop order for every table in the report. Rows are
// always emitted in this order, never in input or alphabetical order.
var Loops = []string{"veloxloop", "asyncio", "uvloop"}

// Section declares one benchmark category: its wire key, presentation text,
// and the ordered configuration keys it expects. The declared key order
// fixes the report layout independent of input map iteration.
type Section struct {
	Key         string
	Title       string
	Description string
	Keys        []string
	Details     bool // sized sections get per-key detail tables
}

// Sections is the canonical section order. A section absent from the input
// tree is omitted from the report, not an error.
var Sections = []Section{
	{
		Key:         "raw",
		Title:       "Raw sockets",
		Description: "TCP echo round-trips over raw sockets, per message size in bytes.",
		Keys:        []string{"1024", "10240", "102400"},
		Details:     true,
	},
	{
		Key:         "stream",
		Title:       "Streams",
		Description: "TCP echo round-trips through the stream reader/writer API, per message size in bytes.",
		Keys:        []string{"1024", "10240", "102400"},
		Details:     true,
	},
	{
		Key:         "proto",
		Title:       "Protocol",
		Description: "TCP echo round-trips through the protocol callback API, per message size in bytes.",
		Keys:        []string{"1024", "10240", "102400"},
		Details:     true,
	},
	{
		Key:         "concurrency",
		Title:       "Concurrency scaling",
		Description: "1024-byte echo round-trips while varying the number of concurrent connections.",
		Keys:        []string{"64", "128", "256", "512"},
	},
}

// Plan is one section selected for rendering together with the subset of
// its declared keys that actually hold records, in declared order.
type Plan struct {
	Section Section
	Keys    []string
}

// Select filters the canonical section list down to the sections present in
// the tree. A declared key with zero records is dropped from the plan, so
// neither the overview table nor the detail pass ever sees an empty column.
// Select never mutates the tree.
func Select(tree results.Tree) []Plan {
	var plans []Plan
	for _, sec := range Sections {
		if _, ok := tree[sec.Key]; !ok {
			continue
		}
		var keys []string
		for _, key := range sec.Keys {
			if len(tree.Records(sec.Key, key)) > 0 {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			continue
		}
		plans = append(plans, Plan{Section: sec, Keys: keys})
	}
	return plans
}
