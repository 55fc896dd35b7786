// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/database/schema"
	"github.com/donghun712/wsd-term-proj/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectFrom() string {
	r, u := schema.Review, schema.User
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, u.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
	`,
		r.ID, r.UserID, r.CourseID, r.Rating, r.Comment, r.CreatedAt, u.Email,
		r.Table,
		u.Table, u.ID, r.UserID,
	)
}

func scanReview(row pgx.Row) (*Review, error) {
	r := &Review{}
	var email string
	if err := row.Scan(&r.ID, &r.UserID, &r.CourseID, &r.Rating, &r.Comment, &r.CreatedAt, &email); err != nil {
		return nil, err
	}
	r.User = &Author{ID: r.UserID, Email: email}
	return r, nil
}

func (repository *PostgresRepository) ListByCourse(context context.Context, courseID int64) ([]*Review, error) {
	query := selectFrom() + fmt.Sprintf(" WHERE r.%s = $1 ORDER BY r.%s DESC, r.%s DESC",
		schema.Review.CourseID, schema.Review.CreatedAt, schema.Review.ID)

	rows, err := repository.db.Query(context, query, courseID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), "list_reviews")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Review, error) {
	query := selectFrom() + fmt.Sprintf(" WHERE r.%s = $1", schema.Review.ID)

	r, err := scanReview(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapEntity(err, "Review", "get_review")
	}
	return r, nil
}

func (repository *PostgresRepository) Create(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.Review.Table,
		schema.Review.UserID, schema.Review.CourseID, schema.Review.Rating, schema.Review.Comment,
		schema.Review.ID, schema.Review.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, r.UserID, r.CourseID, r.Rating, r.Comment).
		Scan(&r.ID, &r.CreatedAt)
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) Update(context context.Context, r *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.Review.Table, schema.Review.Rating, schema.Review.Comment, schema.Review.ID,
	)

	tag, err := repository.db.Exec(context, query, r.Rating, r.Comment, r.ID)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Review.Table, schema.Review.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
