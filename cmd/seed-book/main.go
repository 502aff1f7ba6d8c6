package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/baton/internal/seedbook"
	"github.com/okian/baton/pkg/logger"
)

func main() {
	config := seedbook.NewConfig()

	url := flag.String("url", config.BaseURL, "base URL of the service")
	clients := flag.Int("clients", config.NumClients, "number of client records to generate")
	workers := flag.Int("workers", config.Workers, "number of concurrent submitters")
	timeout := flag.Duration("timeout", config.Timeout, "HTTP request timeout")
	year := flag.Int("year", config.TargetYear, "target fiscal year for revenue histories")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	help := flag.Bool("help", false, "show help")
	flag.Parse()

	if *help {
		seedbook.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	config.BaseURL = *url
	config.NumClients = *clients
	config.Workers = *workers
	config.Timeout = *timeout
	config.TargetYear = *year
	config.Verbose = *verbose

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := seedbook.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Info(ctx, "seeding finished", logger.Any("elapsed", time.Since(start).Round(time.Millisecond)))
}
