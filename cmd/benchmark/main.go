package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/DVNghiem/veloxloop-bench/internal/export"
	"github.com/DVNghiem/veloxloop-bench/internal/harness"
	"github.com/DVNghiem/veloxloop-bench/internal/report"
	"github.com/DVNghiem/veloxloop-bench/internal/store"
)

func main() {
	// Command-line flags
	loops := flag.String("loops", strings.Join(report.Loops, ","), "Comma-separated loops to benchmark")
	python := flag.String("python", "python3", "Python interpreter used to launch the echo servers")
	host := flag.String("host", "127.0.0.1", "Host the echo servers bind to")
	port := flag.Int("port", 25000, "First port assigned to the echo servers")
	requests := flag.Int("requests", 10000, "Echo round-trips per configuration key")
	concurrency := flag.Int("concurrency", 64, "Concurrent connections for the sized sections")
	env := flag.String("env", "", "Environment label for the report header (defaults to GOOS/GOARCH)")
	pyver := flag.String("pyver", "", "Python version string for the report header")
	veloxver := flag.String("veloxloop", "", "Veloxloop version string for the report header")
	output := flag.String("out", "report.md", "Markdown report output path")
	jsonOut := flag.String("json", "", "Optional path to dump the raw results JSON")
	csvOut := flag.String("csv", "", "Optional path to export flat CSV rows")
	storeDSN := flag.String("store", "", "Optional PostgreSQL DSN to persist the run")
	flag.Parse()

	requested := strings.Split(*loops, ",")
	for _, loop := range requested {
		if !validLoop(loop) {
			log.Fatalf("Invalid loop: %s (must be one of %s)", loop, strings.Join(report.Loops, ", "))
		}
	}

	fmt.Println("Veloxloop Benchmark - TCP Echo")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Loops:        %s\n", *loops)
	fmt.Printf("Requests:     %d\n", *requests)
	fmt.Printf("Concurrency:  %d\n", *concurrency)
	fmt.Println()

	run, err := harness.Run(harness.Options{
		Loops:       requested,
		Python:      *python,
		Host:        *host,
		Port:        *port,
		Requests:    *requests,
		Concurrency: *concurrency,
		Env:         *env,
		PyVer:       *pyver,
		Veloxloop:   *veloxver,
	})
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	if *jsonOut != "" {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal results: %v", err)
		}
		if err := os.WriteFile(*jsonOut, data, 0644); err != nil {
			log.Fatalf("Failed to write results JSON: %v", err)
		}
		fmt.Printf("✓ Results written to %s\n", *jsonOut)
	}

	doc, err := report.Compose(run)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	if err := os.WriteFile(*output, []byte(doc), 0644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Printf("✓ Report written to %s\n", *output)

	if *csvOut != "" {
		if err := export.WriteCSV(run, *csvOut); err != nil {
			log.Fatalf("Failed to export CSV: %v", err)
		}
		fmt.Printf("✓ CSV written to %s\n", *csvOut)
	}

	if *storeDSN != "" {
		s, err := store.Open(*storeDSN)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer s.Close()
		if err := s.Save(run); err != nil {
			log.Fatalf("Failed to persist run: %v", err)
		}
		fmt.Printf("✓ Run %s persisted\n", run.RunID)
	}

	fmt.Println()
	fmt.Println("Benchmark completed successfully!")
}

func validLoop(name string) bool {
	for _, loop := range report.Loops {
		if loop == name {
			return true
		}
	}
	return false
}
