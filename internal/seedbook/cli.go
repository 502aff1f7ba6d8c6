package seedbook

import (
	"os"
)

// ShowHelp prints usage information for the seed-book tool.
func ShowHelp() {
	os.Stdout.WriteString(`Baton Seed Book Tool
====================

Generates a synthetic client book and submits it to a running service,
then fetches the derived roster and health score.

Usage:
  go run cmd/seed-book/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -clients int
        Number of client records to generate (default 200)
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -year int
        Target fiscal year for revenue histories (default 2025)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-book/main.go

  # Seed a bigger book against a non-default port
  go run cmd/seed-book/main.go -clients 2000 -url http://localhost:8080
`)
}
