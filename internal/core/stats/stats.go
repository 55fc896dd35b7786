// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats serves the admin dashboard numbers.

Visits are counted per UTC day in Redis by the visit middleware. A scheduled
rollup copies finished days into the daily_stats table so the history
outlives the Redis keys.
*/
package stats

// Totals is the row count of each main table.
type Totals struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	TotalReviews     int64 `json:"total_reviews"`
	TotalEnrollments int64 `json:"total_enrollments"`
}

// Day holds the activity of one UTC day.
type Day struct {
	Visits  int64 `json:"visits"`
	Signups int64 `json:"signups"`
}

const (
	FieldDays = "days"

	DefaultDays = 7
	MaxDays     = 30

	// TodayKey labels the current, still-running day in [Service.Daily].
	TodayKey = "today"

	// rollupLookback is how many finished days each rollup rewrites. It is
	// shorter than the Redis counter TTL.
	rollupLookback = 7
)
