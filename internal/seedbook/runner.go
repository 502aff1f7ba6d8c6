package seedbook

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/okian/baton/pkg/logger"
)

// settleDelay gives the ingestion pipeline time to drain before the
// roster is fetched.
const settleDelay = 2 * time.Second

// Run executes one full seeding pass: generate, submit, then fetch the
// derived roster and health score and print a summary.
func Run(ctx context.Context, config *Config) error {
	log := logger.Get().Named("seedbook")
	start := time.Now()
	stats := &Stats{}

	upserts := GenerateClients(config, stats)
	log.Info(ctx, "generated synthetic book", logger.Int("clients", stats.ClientsGenerated))

	if err := submitClients(ctx, config, upserts, stats); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settleDelay):
	}

	partners, err := fetchRoster(config)
	if err != nil {
		return err
	}
	score, err := fetchHealth(config)
	if err != nil {
		return err
	}

	stats.Elapsed = time.Since(start)
	printSummary(config, stats, len(partners), score)

	// Largest books first for the summary table.
	sort.Slice(partners, func(i, j int) bool {
		return partners[i].TotalRevenue > partners[j].TotalRevenue
	})
	for _, p := range partners {
		fmt.Fprintf(os.Stdout, "  %-24s clients=%-4d revenue=%12.2f capacity=%5.1f%%\n",
			p.Name, p.ClientCount, p.TotalRevenue, p.CapacityUsed)
	}
	return nil
}

func printSummary(config *Config, stats *Stats, partnerCount int, score healthScore) {
	fmt.Fprintf(os.Stdout, "\nSeeding summary\n")
	fmt.Fprintf(os.Stdout, "  target:     %s\n", config.BaseURL)
	fmt.Fprintf(os.Stdout, "  generated:  %d\n", stats.ClientsGenerated)
	fmt.Fprintf(os.Stdout, "  submitted:  %d (duplicates %d, failed %d)\n", stats.Submitted, stats.Duplicates, stats.Failed)
	fmt.Fprintf(os.Stdout, "  partners:   %d\n", partnerCount)
	fmt.Fprintf(os.Stdout, "  health:     %d (revenue %.1f, capacity %.1f, overload %.1f)\n",
		score.Composite, score.RevenueScore, score.CapacityScore, score.OverloadScore)
	fmt.Fprintf(os.Stdout, "  elapsed:    %s\n\n", stats.Elapsed.Round(time.Millisecond))
}
