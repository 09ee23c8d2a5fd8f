package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

func record(rps float64) results.Record {
	return results.Record{RPS: rps, Mean: 0.011, P99: 0.027, Min: 0.010, Max: 3.630}
}

func TestOverviewDeclaredRowOrder(t *testing.T) {
	// Input map order is irrelevant: rows come out in declared loop order.
	sec := results.SectionResults{
		"1024": {
			"uvloop":    record(60000),
			"veloxloop": record(71764.8),
			"asyncio":   record(40000),
		},
	}

	r := NewRenderer()
	got, err := r.Overview(sec, []string{"1024"})
	require.NoError(t, err)

	want := "| Loop | 1024 |\n" +
		"| --- | --- |\n" +
		"| veloxloop | 71,765 |\n" +
		"| asyncio | 40,000 |\n" +
		"| uvloop | 60,000 |\n"
	assert.Equal(t, want, got)
}

func TestOverviewSkipsAbsentLoopAndEmptiesMissingCell(t *testing.T) {
	sec := results.SectionResults{
		"1024":  {"veloxloop": record(71764.8), "uvloop": record(60000)},
		"10240": {"veloxloop": record(30000)},
	}

	r := NewRenderer()
	got, err := r.Overview(sec, []string{"1024", "10240"})
	require.NoError(t, err)

	// asyncio has no records at all: no row. uvloop misses 10240: empty cell.
	want := "| Loop | 1024 | 10240 |\n" +
		"| --- | --- | --- |\n" +
		"| veloxloop | 71,765 | 30,000 |\n" +
		"| uvloop | 60,000 |  |\n"
	assert.Equal(t, want, got)
}

func TestDetailSchema(t *testing.T) {
	kr := results.KeyResults{"veloxloop": record(71764.8)}

	r := NewRenderer()
	got, err := r.Detail(kr)
	require.NoError(t, err)

	want := "| Loop | RPS | Mean Latency | 99p Latency | Min | Max |\n" +
		"| --- | --- | --- | --- | --- | --- |\n" +
		"| veloxloop | 71,764.8 | 0.011ms | 0.027ms | 0.010ms | 3.630ms |\n"
	assert.Equal(t, want, got)
}

func TestDetailInvalidMetricNamesLoopAndField(t *testing.T) {
	kr := results.KeyResults{
		"veloxloop": {RPS: 1000, Mean: 0.1, P99: math.NaN(), Min: 0.1, Max: 0.2},
	}

	r := NewRenderer()
	_, err := r.Detail(kr)
	require.Error(t, err)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "p99", ferr.Field)
	assert.Contains(t, err.Error(), "veloxloop")
}

func TestOverviewNegativeRPSFails(t *testing.T) {
	sec := results.SectionResults{"1024": {"veloxloop": record(-1)}}

	r := NewRenderer()
	_, err := r.Overview(sec, []string{"1024"})
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "rps", ferr.Field)
}
