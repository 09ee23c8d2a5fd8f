package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/DVNghiem/veloxloop-bench/internal/report"
	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// WriteCSV exports a run's records as flat rows for plotting. Rows follow
// the declared section/key/loop order, so two exports of the same run are
// identical.
func WriteCSV(run *results.Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Section", "Key", "Loop", "RPS", "MeanMs", "P99Ms", "MinMs", "MaxMs"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, plan := range report.Select(run.Results) {
		for _, key := range plan.Keys {
			records := run.Results.Records(plan.Section.Key, key)
			for _, loop := range report.Loops {
				rec, ok := records[loop]
				if !ok {
					continue
				}
				row := []string{
					plan.Section.Key,
					key,
					loop,
					strconv.FormatFloat(rec.RPS, 'f', 1, 64),
					strconv.FormatFloat(rec.Mean, 'f', 3, 64),
					strconv.FormatFloat(rec.P99, 'f', 3, 64),
					strconv.FormatFloat(rec.Min, 'f', 3, 64),
					strconv.FormatFloat(rec.Max, 'f', 3, 64),
				}
				if err := writer.Write(row); err != nil {
					return fmt.Errorf("write CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return nil
}
