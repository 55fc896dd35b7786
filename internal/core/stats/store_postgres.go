// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/database/schema"
	"github.com/donghun712/wsd-term-proj/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Totals(context context.Context) (*Totals, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s)
	`, schema.User.Table, schema.Course.Table, schema.Review.Table, schema.Enrollment.Table)

	totals := &Totals{}
	err := repository.db.QueryRow(context, query).
		Scan(&totals.TotalUsers, &totals.TotalCourses, &totals.TotalReviews, &totals.TotalEnrollments)
	if err != nil {
		return nil, dberr.Wrap(err, "count_totals")
	}
	return totals, nil
}

func (repository *PostgresRepository) Visits(context context.Context, from, to time.Time) (map[string]int64, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s >= $1 AND %s < $2`,
		schema.DailyStat.Day, schema.DailyStat.Visits, schema.DailyStat.Table,
		schema.DailyStat.Day, schema.DailyStat.Day,
	)

	rows, err := repository.db.Query(context, query,
		from.Format(constants.DateLayout), to.Format(constants.DateLayout))
	if err != nil {
		return nil, dberr.Wrap(err, "list_daily_visits")
	}
	defer rows.Close()

	visits := make(map[string]int64)
	for rows.Next() {
		var (
			day   time.Time
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_daily_visits")
		}
		visits[day.Format(constants.DateLayout)] = count
	}

	return visits, dberr.Wrap(rows.Err(), "list_daily_visits")
}

func (repository *PostgresRepository) Signups(context context.Context, from, to time.Time) (map[string]int64, error) {
	query := fmt.Sprintf(`
		SELECT TO_CHAR(%s AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM %s
		WHERE %s >= $1 AND %s < $2
		GROUP BY day
	`,
		schema.User.CreatedAt, schema.User.Table, schema.User.CreatedAt, schema.User.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, from, to)
	if err != nil {
		return nil, dberr.Wrap(err, "list_daily_signups")
	}
	defer rows.Close()

	signups := make(map[string]int64)
	for rows.Next() {
		var (
			day   string
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_daily_signups")
		}
		signups[day] = count
	}

	return signups, dberr.Wrap(rows.Err(), "list_daily_signups")
}

func (repository *PostgresRepository) UpsertVisits(context context.Context, day time.Time, visits int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%[2]s) DO UPDATE
		SET %[3]s = GREATEST(%[1]s.%[3]s, EXCLUDED.%[3]s), %[4]s = NOW()
	`, schema.DailyStat.Table, schema.DailyStat.Day, schema.DailyStat.Visits, schema.DailyStat.UpdatedAt)

	_, err := repository.db.Exec(context, query, day.Format(constants.DateLayout), visits)
	return dberr.Wrap(err, "upsert_daily_visits")
}
