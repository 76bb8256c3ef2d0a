// Package main provides a standalone health check command.
// Intended for Docker health checks and monitoring scripts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	var (
		url     = flag.String("url", "http://localhost:8080/health", "Health check endpoint URL")
		timeout = flag.Duration("timeout", 10*time.Second, "Request timeout")
		retries = flag.Int("retries", 1, "Number of attempts before giving up")
		delay   = flag.Duration("retry-delay", 2*time.Second, "Delay between attempts")
		verbose = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	client := &http.Client{Timeout: *timeout}

	var lastErr error
	for attempt := 1; attempt <= *retries; attempt++ {
		if attempt > 1 {
			time.Sleep(*delay)
		}
		status, err := check(client, *url, *verbose)
		if err == nil {
			os.Exit(status)
		}
		lastErr = err
		if *verbose {
			fmt.Fprintf(os.Stderr, "attempt %d/%d failed: %v\n", attempt, *retries, err)
		}
	}

	fmt.Fprintf(os.Stderr, "health check failed: %v\n", lastErr)
	os.Exit(exitCodeError)
}

func check(client *http.Client, url string, verbose bool) (int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return exitCodeError, err
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return exitCodeError, fmt.Errorf("unreadable response: %w", err)
	}

	if verbose {
		fmt.Printf("status=%s version=%s http=%d\n", body.Status, body.Version, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusOK && body.Status == "ok" {
		return exitCodeSuccess, nil
	}
	return exitCodeFailure, nil
}
