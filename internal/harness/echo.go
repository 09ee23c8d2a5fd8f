package harness

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// LoadConfig describes one echo measurement: how many round-trips of what
// size to push through how many concurrent connections.
type LoadConfig struct {
	Addr        string
	MessageSize int
	Concurrency int
	Requests    int // total round-trips, split across connections
	Timeout     time.Duration
}

// RunLoad drives the echo workload against a running server and summarizes
// the measured latencies. Each connection performs its share of round-trips
// sequentially; connections run in parallel.
func RunLoad(cfg LoadConfig) (results.Record, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	allLatencies := make([]time.Duration, 0, cfg.Requests)
	var firstErr error

	perConn := cfg.Requests / cfg.Concurrency
	remainder := cfg.Requests % cfg.Concurrency
	startTime := time.Now()

	for workerID := 0; workerID < cfg.Concurrency; workerID++ {
		wg.Add(1)

		workerRequests := perConn
		if workerID < remainder {
			workerRequests++
		}

		go func(requests int) {
			defer wg.Done()
			latencies, err := runEchoWorker(cfg, requests)

			mu.Lock()
			allLatencies = append(allLatencies, latencies...)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}(workerRequests)
	}

	wg.Wait()
	elapsed := time.Since(startTime)

	if firstErr != nil {
		return results.Record{}, fmt.Errorf("echo load %s (size=%d, conc=%d): %w",
			cfg.Addr, cfg.MessageSize, cfg.Concurrency, firstErr)
	}

	return Summarize(allLatencies, elapsed), nil
}

func runEchoWorker(cfg LoadConfig, requests int) ([]time.Duration, error) {
	conn, err := net.DialTimeout("tcp", cfg.Addr, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	payload := bytes.Repeat([]byte("x"), cfg.MessageSize)
	reply := make([]byte, cfg.MessageSize)
	latencies := make([]time.Duration, 0, requests)

	for i := 0; i < requests; i++ {
		if err := conn.SetDeadline(time.Now().Add(cfg.Timeout)); err != nil {
			return latencies, fmt.Errorf("set deadline: %w", err)
		}

		start := time.Now()
		if _, err := conn.Write(payload); err != nil {
			return latencies, fmt.Errorf("write request %d: %w", i, err)
		}
		if _, err := io.ReadFull(conn, reply); err != nil {
			return latencies, fmt.Errorf("read reply %d: %w", i, err)
		}
		latencies = append(latencies, time.Since(start))
	}

	return latencies, nil
}
