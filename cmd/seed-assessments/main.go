package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/fullcircle/internal/loadgen"
	"github.com/okian/fullcircle/pkg/logger"
)

func main() {
	cfg := loadgen.NewConfig()

	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the assessment service")
	flag.IntVar(&cfg.Ratees, "ratees", cfg.Ratees, "number of ratees to generate")
	flag.IntVar(&cfg.PeersPerRatee, "peers", cfg.PeersPerRatee, "peer raters per ratee")
	flag.IntVar(&cfg.ManagersPerRatee, "managers", cfg.ManagersPerRatee, "manager raters per ratee")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "concurrent requests")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := loadgen.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seed run failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Info(ctx, "seed run complete", logger.String("elapsed", time.Since(start).String()))
}
