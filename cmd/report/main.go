package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DVNghiem/veloxloop-bench/internal/report"
	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// Re-renders the markdown report from a captured results file, without
// running any benchmarks.
func main() {
	input := flag.String("input", "results.json", "Captured results JSON file")
	output := flag.String("output", "report.md", "Markdown report output path")
	flag.Parse()

	run, err := results.LoadFile(*input)
	if err != nil {
		log.Fatalf("Failed to load results: %v", err)
	}

	doc, err := report.Compose(run)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	if err := os.WriteFile(*output, []byte(doc), 0644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Printf("✓ Report written to %s\n", *output)
}
