// Package main runs the web server and the MCP server in one container.
package main

import (
	"errors"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout is the grace period before forcing child exit.
const shutdownTimeout = 10 * time.Second

// child is a managed service process.
type child struct {
	name string
	cmd  *exec.Cmd
}

// exit reports one child leaving the process table.
type exit struct {
	name string
	err  error
}

func main() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	webAddr := getenvDefault("ABACUS_WEB_HTTP_ADDR", "0.0.0.0:8080")
	mcpAddr := getenvDefault("ABACUS_MCP_HTTP_ADDR", "0.0.0.0:8081")

	children := make([]*child, 0, 2)
	exits := make(chan exit, 2)

	web, err := start("web", exits, "/app/web", "-http-addr="+webAddr)
	if err != nil {
		log.Fatalf("start web: %v", err)
	}
	children = append(children, web)

	mcp, err := start("mcp", exits, "/app/mcp", "-transport=http", "-http-addr="+mcpAddr)
	if err != nil {
		terminate(children)
		log.Fatalf("start mcp: %v", err)
	}
	children = append(children, mcp)

	select {
	case <-signals:
		log.Printf("shutdown signal received")
		terminate(children)
		drain(exits, len(children), children)
	case first := <-exits:
		log.Printf("%s exited: %v", first.name, first.err)
		terminate(children)
		drain(exits, len(children)-1, children)
		os.Exit(exitCode(first.err))
	}
}

// start launches one service binary with inherited stdio and reports its exit
// on exits.
func start(name string, exits chan<- exit, bin string, args ...string) (*child, error) {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	c := &child{name: name, cmd: cmd}
	go func() {
		exits <- exit{name: name, err: cmd.Wait()}
	}()
	return c, nil
}

// terminate asks every running child to stop.
func terminate(children []*child) {
	for _, c := range children {
		if c == nil || c.cmd.Process == nil {
			continue
		}
		_ = c.cmd.Process.Signal(syscall.SIGTERM)
	}
}

// drain waits for the remaining exits, killing stragglers after the grace
// period.
func drain(exits <-chan exit, remaining int, children []*child) {
	timer := time.NewTimer(shutdownTimeout)
	defer timer.Stop()

	for remaining > 0 {
		select {
		case <-exits:
			remaining--
		case <-timer.C:
			for _, c := range children {
				if c == nil || c.cmd.Process == nil || c.cmd.ProcessState != nil {
					continue
				}
				_ = c.cmd.Process.Kill()
			}
			return
		}
	}
}

// exitCode derives a process exit code from a wait error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// getenvDefault returns the env value or a fallback when unset.
func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
