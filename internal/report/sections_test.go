package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

func TestSelectCanonicalOrder(t *testing.T) {
	// Map iteration order must not leak into section order.
	tree := results.Tree{
		"concurrency": {"64": {"veloxloop": record(50000)}},
		"proto":       {"1024": {"veloxloop": record(50000)}},
		"raw":         {"1024": {"veloxloop": record(50000)}},
		"stream":      {"1024": {"veloxloop": record(50000)}},
	}

	plans := Select(tree)
	require.Len(t, plans, 4)

	var order []string
	for _, p := range plans {
		order = append(order, p.Section.Key)
	}
	assert.Equal(t, []string{"raw", "stream", "proto", "concurrency"}, order)
}

func TestSelectSkipsAbsentSections(t *testing.T) {
	tree := results.Tree{
		"raw": {"1024": {"veloxloop": record(50000)}},
	}

	plans := Select(tree)
	require.Len(t, plans, 1)
	assert.Equal(t, "raw", plans[0].Section.Key)
}

func TestSelectDropsKeysWithoutRecords(t *testing.T) {
	tree := results.Tree{
		"raw": {
			"1024":   {"veloxloop": record(50000)},
			"10240":  {},
			"102400": {"uvloop": record(20000)},
		},
	}

	plans := Select(tree)
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"1024", "102400"}, plans[0].Keys)
}

func TestSelectDropsSectionWithNoPopulatedKeys(t *testing.T) {
	tree := results.Tree{
		"raw":    {"1024": {}},
		"stream": {"9999": {"veloxloop": record(50000)}}, // undeclared key
	}

	assert.Empty(t, Select(tree))
}

func TestSelectIsRepeatable(t *testing.T) {
	tree := results.Tree{
		"raw":   {"1024": {"veloxloop": record(50000)}},
		"proto": {"10240": {"uvloop": record(40000)}},
	}

	first := Select(tree)
	second := Select(tree)
	assert.Equal(t, first, second)
}
