package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// DefaultPollInterval is the dashboard refresh period.
const DefaultPollInterval = 30 * time.Second

// StatsFetcher loads dashboard statistics.
type StatsFetcher interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
}

// Poller refreshes dashboard statistics periodically and hands every
// successful, still current result to the update callback.
type Poller struct {
	fetcher  StatsFetcher
	interval time.Duration
	update   func(context.Context, map[string]float64)
	seq      Sequencer
	logger   *slog.Logger
}

// NewPoller creates a poller. A non-positive interval means DefaultPollInterval.
func NewPoller(f StatsFetcher, interval time.Duration, update func(context.Context, map[string]float64), l *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Poller{fetcher: f, interval: interval, update: update, logger: l}
}

// Refresh fetches once. Failed requests and responses with success=false
// leave the previous values in place.
func (p *Poller) Refresh(ctx context.Context) {
	id := p.seq.Next()
	stats, err := p.fetcher.DashboardStats(ctx)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "dashboard stats refresh failed",
			logger.Component("dashboard"),
			logger.Error(err),
		)
		return
	}
	if !stats.Success || !p.seq.IsLatest(id) {
		return
	}
	p.update(ctx, stats.Stats)
}

// Run refreshes immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}
