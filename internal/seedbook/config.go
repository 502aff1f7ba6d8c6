// Package seedbook generates synthetic client books and feeds them to a
// running service for manual testing and demos.
package seedbook

import (
	"runtime"
	"time"
)

// Default configuration constants.
const (
	defaultNumClients = 200
	defaultTimeout    = 30 * time.Second
	defaultBaseURL    = "http://localhost:9080"
)

// Config controls one seeding run.
type Config struct {
	BaseURL    string
	NumClients int
	Workers    int
	Timeout    time.Duration
	TargetYear int
	Verbose    bool
}

// NewConfig creates a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:    defaultBaseURL,
		NumClients: defaultNumClients,
		Workers:    runtime.NumCPU() * 2,
		Timeout:    defaultTimeout,
		TargetYear: 2025,
	}
}

// Stats accumulates counters over a run.
type Stats struct {
	ClientsGenerated int
	Submitted        int64
	Duplicates       int64
	Failed           int64
	Elapsed          time.Duration
}
