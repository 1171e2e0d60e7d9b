package web

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/api"
	"github.com/borrmann/bautagebuch/pkg/format"
	"github.com/borrmann/bautagebuch/pkg/logger"
)

// DefaultStats are the counters shown on the dashboard. Keys match the
// server's stats object; unknown keys are ignored.
func DefaultStats() []StatCard {
	return []StatCard{
		{Key: "eintraege", Label: "Einträge gesamt", Value: "0"},
		{Key: "heute", Label: "Einträge heute", Value: "0"},
		{Key: "materialien", Label: "Materialien", Value: "0"},
		{Key: "baustellen", Label: "Aktive Baustellen", Value: "0"},
	}
}

// Dashboard streams counter updates to open pages.
type Dashboard struct {
	backend  Backend
	cards    []StatCard
	interval time.Duration
	format   *format.Formatter
	logger   *slog.Logger
}

// NewDashboard creates the dashboard stream. A non-positive interval
// means api.DefaultPollInterval.
func NewDashboard(backend Backend, cards []StatCard, interval time.Duration, f *format.Formatter, l *slog.Logger) *Dashboard {
	if l == nil {
		l = logger.Nop()
	}
	return &Dashboard{backend: backend, cards: cards, interval: interval, format: f, logger: l}
}

// Cards returns the counters with their placeholder values.
func (h *Dashboard) Cards() []StatCard {
	return h.cards
}

// patches turns stats into counter updates, skipping keys without a card.
func (h *Dashboard) patches(stats map[string]float64) []handler.Action {
	var actions []handler.Action
	for _, c := range h.cards {
		v, ok := stats[c.Key]
		if !ok {
			continue
		}
		actions = append(actions, handler.Element(StatValue(c.Key, h.format.Integer(int64(math.Floor(v))))))
	}
	return actions
}

func (h *Dashboard) stream(ctx handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(s handler.StreamContext) error {
		poller := api.NewPoller(h.backend, h.interval, func(ctx context.Context, stats map[string]float64) {
			actions := h.patches(stats)
			if len(actions) == 0 {
				return
			}
			if err := s.Send(actions...); err != nil {
				h.logger.LogAttrs(ctx, slog.LevelDebug, "dashboard stream closed",
					logger.Component("dashboard"),
					logger.Error(err),
				)
			}
		}, h.logger)
		poller.Run(s)
		return nil
	})
}
