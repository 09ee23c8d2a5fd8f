package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"run_at": 1736434800,
	"cpu": 4,
	"env": "GHA Linux x86_64",
	"pyver": "3.12.3",
	"veloxloop": "0.2.1",
	"results": {
		"raw": {
			"1024": {
				"veloxloop": {"rps": 71764.8, "mean": 0.011, "p99": 0.027, "min": 0.010, "max": 3.630}
			}
		}
	}
}`

func TestParseValidDocument(t *testing.T) {
	run, err := Parse([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, int64(1736434800), run.RunAt)
	assert.Equal(t, 4, run.CPU)
	assert.Equal(t, "3.12.3", run.PyVer)
	assert.Equal(t, "0.2.1", run.Veloxloop)

	rec, ok := run.Results.Records("raw", "1024")["veloxloop"]
	require.True(t, ok)
	assert.InDelta(t, 71764.8, rec.RPS, 1e-9)
	assert.InDelta(t, 0.027, rec.P99, 1e-9)
}

func TestParseMissingMetricField(t *testing.T) {
	doc := `{
		"run_at": 1,
		"results": {
			"stream": {"1024": {"uvloop": {"rps": 1.0, "mean": 0.1, "p99": 0.2, "min": 0.1}}}
		}
	}`

	_, err := Parse([]byte(doc))
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "stream/1024/uvloop/max", serr.Path)
}

func TestParseRecordWrongShape(t *testing.T) {
	doc := `{
		"run_at": 1,
		"results": {"raw": {"1024": {"veloxloop": [1, 2, 3]}}}
	}`

	_, err := Parse([]byte(doc))
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "raw/1024/veloxloop", serr.Path)
}

func TestParseMissingRunAt(t *testing.T) {
	_, err := Parse([]byte(`{"results": {}}`))
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "run_at", serr.Path)
}

func TestParseAbsentSectionsAreFine(t *testing.T) {
	run, err := Parse([]byte(`{"run_at": 1, "results": {}}`))
	require.NoError(t, err)
	assert.Empty(t, run.Results)
	assert.Nil(t, run.Results.Records("raw", "1024"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))

	run, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, run.CPU)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
