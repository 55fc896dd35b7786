// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"time"
)

type Repository interface {
	Totals(context context.Context) (*Totals, error)

	// Visits returns persisted visit counts keyed by YYYY-MM-DD for days in [from, to).
	Visits(context context.Context, from, to time.Time) (map[string]int64, error)

	// Signups returns account creations keyed by UTC YYYY-MM-DD for [from, to).
	Signups(context context.Context, from, to time.Time) (map[string]int64, error)

	// UpsertVisits stores the visit count of day, never lowering a stored value.
	UpsertVisits(context context.Context, day time.Time, visits int64) error
}

// VisitCounter reads the live per-day counters.
type VisitCounter interface {
	Get(context context.Context, key string) (int64, error)
}
