// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
)

type Service struct {
	repo    Repository
	counter VisitCounter
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, counter VisitCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, counter: counter, logger: logger, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

func (service *Service) Totals(context context.Context) (*Totals, error) {
	return service.repo.Totals(context)
}

/*
Daily returns visits and signups for the last `days` finished UTC days plus
the running day under [TodayKey].

Description: Finished days read visits from the rollup table. The running
day reads the live Redis counter; if Redis is unreachable it reports zero
visits rather than failing the dashboard.

Returns:
  - map[string]Day: Keyed by YYYY-MM-DD and "today"
  - error: ValidationError when days is outside [1, MaxDays]
*/
func (service *Service) Daily(context context.Context, days int) (map[string]Day, error) {
	if days < 1 || days > MaxDays {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldDays,
			Message: "Must be between 1 and 30",
		})
	}

	today := startOfDay(service.now())
	from := today.AddDate(0, 0, -days)
	tomorrow := today.AddDate(0, 0, 1)

	// ── 1. Persisted History ─────────────────────────────────────────────
	visits, err := service.repo.Visits(context, from, today)
	if err != nil {
		return nil, err
	}

	signups, err := service.repo.Signups(context, from, tomorrow)
	if err != nil {
		return nil, err
	}

	result := make(map[string]Day, days+1)
	for day := from; day.Before(today); day = day.AddDate(0, 0, 1) {
		key := day.Format(constants.DateLayout)
		result[key] = Day{Visits: visits[key], Signups: signups[key]}
	}

	// ── 2. Running Day ───────────────────────────────────────────────────
	todayKey := today.Format(constants.DateLayout)
	live, err := service.counter.Get(context, constants.RedisPrefixDailyVisits+todayKey)
	if err != nil {
		service.logger.Warn("visit_counter_unavailable", slog.Any("error", err))
		live = 0
	}
	result[TodayKey] = Day{Visits: live, Signups: signups[todayKey]}

	return result, nil
}

/*
Rollup copies the Redis visit counters of recent finished days into the
daily_stats table. It is safe to run repeatedly.
*/
func (service *Service) Rollup(context context.Context) error {
	today := startOfDay(service.now())

	for offset := 1; offset <= rollupLookback; offset++ {
		day := today.AddDate(0, 0, -offset)
		key := constants.RedisPrefixDailyVisits + day.Format(constants.DateLayout)

		visits, err := service.counter.Get(context, key)
		if err != nil {
			return err
		}
		if visits == 0 {
			continue
		}

		if err := service.repo.UpsertVisits(context, day, visits); err != nil {
			return err
		}
	}

	service.logger.Info("daily_visits_rolled_up", slog.String("through", today.AddDate(0, 0, -1).Format(constants.DateLayout)))
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
