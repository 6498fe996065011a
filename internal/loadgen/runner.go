package loadgen

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/fullcircle/pkg/logger"
)

// Run posts all generated submissions concurrently, then reads each ratee's
// report and logs a summary.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Named("loadgen")
	client := NewClient(cfg)

	competencies, scaleMax, err := client.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	subs := GenerateSubmissions(cfg, competencies, scaleMax)
	log.Info(ctx, "generated submissions",
		logger.Int("ratees", cfg.Ratees),
		logger.Int("submissions", len(subs)),
	)

	var accepted, duplicate, rejected, failed atomic.Int64

	start := time.Now()
	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			status, err := client.PostRating(runCtx, sub)
			switch {
			case err != nil:
				failed.Add(1)
			case status == http.StatusAccepted:
				accepted.Add(1)
			case status == http.StatusOK:
				duplicate.Add(1)
			default:
				rejected.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info(ctx, "submission phase done",
		logger.Int("accepted", int(accepted.Load())),
		logger.Int("duplicate", int(duplicate.Load())),
		logger.Int("rejected", int(rejected.Load())),
		logger.Int("failed", int(failed.Load())),
		logger.String("elapsed", time.Since(start).String()),
	)

	// Report phase: one read per ratee (the self submissions carry the ids).
	var scoredTotal atomic.Int64
	g, runCtx = errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, sub := range subs {
		if sub.Role != "self" {
			continue
		}
		sub := sub
		g.Go(func() error {
			scored, err := client.FetchReport(runCtx, sub.RateeID)
			if err != nil {
				failed.Add(1)
				return nil
			}
			scoredTotal.Add(int64(scored))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info(ctx, "report phase done",
		logger.Int("scoredCompetencies", int(scoredTotal.Load())),
		logger.String("elapsed", time.Since(start).String()),
	)
	return nil
}
