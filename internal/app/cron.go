package app

import (
	"context"
	"fmt"

	"github.com/carpediction/server/internal/modules/wotd"
	pkgcron "github.com/carpediction/server/internal/pkg/cron"
)

// ScrapeJobName identifies the word-of-the-day ingestion job.
const ScrapeJobName = "scrape_wotd"

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs() {
	svc := a.wotdSvc

	a.sched.Register(pkgcron.Job{
		Name:        ScrapeJobName,
		Description: "scrape the word of the day and ingest it",
		Interval:    a.cfg.Wotd.ScrapeInterval.D(),
		RunAtStart:  true,
		Fn: func(ctx context.Context) error {
			attempt := svc.RunIngestion(ctx)
			if attempt.Outcome == wotd.Failed {
				return fmt.Errorf("wotd ingestion: %w", attempt.Err)
			}
			return nil
		},
	})
}
