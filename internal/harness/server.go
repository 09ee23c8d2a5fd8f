package harness

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"time"
)

// Server is one external echo server process: a Python interpreter running
// the benchmark server module under a specific event loop and mode.
type Server struct {
	Name    string   // loop implementation name, used in progress output
	Command []string // full argv
	Addr    string   // host:port the server listens on

	cmd *exec.Cmd
}

// Start launches the server process and blocks until it accepts TCP
// connections or the readiness deadline passes.
func (s *Server) Start() error {
	fmt.Printf("→ Starting %s echo server (%s)...\n", s.Name, s.Addr)

	cmd := exec.Command(s.Command[0], s.Command[1:]...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s server: %w", s.Name, err)
	}
	s.cmd = cmd

	if err := WaitForReady(s.Addr, 30*time.Second); err != nil {
		s.Stop()
		return fmt.Errorf("%s server: %w", s.Name, err)
	}
	return nil
}

// Stop terminates the server process. Errors are ignored; the process may
// already have exited.
func (s *Server) Stop() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	s.cmd.Process.Kill()
	s.cmd.Wait()
	s.cmd = nil
}

// WaitForReady polls the server address until it accepts a TCP connection.
func WaitForReady(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}

	return fmt.Errorf("timeout waiting for %s after %v", addr, timeout)
}
