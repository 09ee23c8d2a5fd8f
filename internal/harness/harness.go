package harness

import (
	"fmt"
	"net"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/DVNghiem/veloxloop-bench/internal/report"
	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// Options configures a full benchmark run. Interpreter and library versions
// are discovered by the caller and passed through as opaque metadata.
type Options struct {
	Loops       []string // subset of report.Loops to benchmark
	Python      string   // interpreter used to launch the echo servers
	Host        string
	Port        int // each (loop, section) server gets a fresh port from here
	Requests    int // round-trips per configuration key
	Concurrency int // connections for the sized sections
	Env         string
	PyVer       string
	Veloxloop   string
}

// Run benchmarks every requested loop across all declared sections and
// returns the populated result tree with run metadata. A loop whose server
// fails to start is skipped with a warning rather than failing the run, so
// a missing baseline never loses the subject's numbers.
func Run(opts Options) (*results.Run, error) {
	if opts.Python == "" {
		opts.Python = "python3"
	}
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Port == 0 {
		opts.Port = 25000
	}
	if opts.Requests == 0 {
		opts.Requests = 10000
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = 64
	}
	if opts.Env == "" {
		opts.Env = fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
	}

	tree := make(results.Tree)
	port := opts.Port

	for _, loop := range opts.Loops {
		for _, sec := range report.Sections {
			addr := fmt.Sprintf("%s:%d", opts.Host, port)
			port++

			server := &Server{
				Name:    loop,
				Command: serverCommand(opts.Python, loop, sec.Key, addr),
				Addr:    addr,
			}
			if err := server.Start(); err != nil {
				fmt.Printf("⚠ Skipping %s/%s: %v\n", loop, sec.Key, err)
				continue
			}

			if err := measureSection(tree, sec, loop, addr, opts); err != nil {
				server.Stop()
				return nil, fmt.Errorf("loop %s: section %s: %w", loop, sec.Key, err)
			}
			server.Stop()
		}
	}

	return &results.Run{
		RunAt:     time.Now().Unix(),
		CPU:       runtime.NumCPU(),
		Env:       opts.Env,
		PyVer:     opts.PyVer,
		Veloxloop: opts.Veloxloop,
		RunID:     uuid.NewString(),
		Results:   tree,
	}, nil
}

// measureSection runs one load per declared configuration key and files the
// records into the tree. Sized sections vary the message size at fixed
// concurrency; the scaling section varies concurrency at 1024 bytes.
func measureSection(tree results.Tree, sec report.Section, loop, addr string, opts Options) error {
	for _, key := range sec.Keys {
		cfg := LoadConfig{
			Addr:     addr,
			Requests: opts.Requests,
		}
		n, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		if sec.Details {
			cfg.MessageSize = n
			cfg.Concurrency = opts.Concurrency
		} else {
			cfg.MessageSize = 1024
			cfg.Concurrency = n
		}

		fmt.Printf("→ %s/%s key=%s (size=%d, conc=%d, requests=%d)...\n",
			loop, sec.Key, key, cfg.MessageSize, cfg.Concurrency, cfg.Requests)

		rec, err := RunLoad(cfg)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		fmt.Printf("✓ %s/%s key=%s: %.1f req/s (mean %.3fms, p99 %.3fms)\n",
			loop, sec.Key, key, rec.RPS, rec.Mean, rec.P99)

		if tree[sec.Key] == nil {
			tree[sec.Key] = make(results.SectionResults)
		}
		if tree[sec.Key][key] == nil {
			tree[sec.Key][key] = make(results.KeyResults)
		}
		tree[sec.Key][key][loop] = rec
	}
	return nil
}

// serverCommand builds the argv for one echo server process. The server
// module speaks all three section modes; the scaling section reuses raw.
func serverCommand(python, loop, section, addr string) []string {
	mode := section
	if section == "concurrency" {
		mode = "raw"
	}
	host, port, _ := net.SplitHostPort(addr)
	return []string{
		python, "-m", "benchmarks.echo_server",
		"--loop", loop,
		"--mode", mode,
		"--host", host,
		"--port", port,
	}
}
