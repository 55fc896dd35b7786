// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
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

func (repository *PostgresRepository) Create(context context.Context, e *Enrollment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.Enrollment.Table, schema.Enrollment.UserID, schema.Enrollment.CourseID, schema.Enrollment.Status,
		schema.Enrollment.ID, schema.Enrollment.EnrolledAt,
	)

	err := repository.db.QueryRow(context, query, e.UserID, e.CourseID, e.Status).Scan(&e.ID, &e.EnrolledAt)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Already enrolled in this course")
	}
	return dberr.Wrap(err, "create_enrollment")
}

func (repository *PostgresRepository) Find(context context.Context, userID, courseID int64) (*Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Enrollment.ID, schema.Enrollment.UserID, schema.Enrollment.CourseID,
		schema.Enrollment.Status, schema.Enrollment.EnrolledAt,
		schema.Enrollment.Table, schema.Enrollment.UserID, schema.Enrollment.CourseID,
	)

	e := &Enrollment{}
	err := repository.db.QueryRow(context, query, userID, courseID).
		Scan(&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.EnrolledAt)
	if err != nil {
		return nil, dberr.WrapEntity(err, "Enrollment", "get_enrollment")
	}
	return e, nil
}

/*
ListByUser returns the user's enrollments, newest first, each joined with
its course and the course's instructor and category.
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]*Enrollment, error) {
	e, c, u, cat := schema.Enrollment, schema.Course, schema.User, schema.Category
	query := fmt.Sprintf(`
		SELECT e.%s, e.%s, e.%s, e.%s, e.%s,
		       c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       u.%s, u.%s,
		       cat.%s, cat.%s, cat.%s
		FROM %s e
		JOIN %s c ON c.%s = e.%s
		LEFT JOIN %s u ON u.%s = c.%s
		LEFT JOIN %s cat ON cat.%s = c.%s
		WHERE e.%s = $1
		ORDER BY e.%s DESC, e.%s DESC
	`,
		e.ID, e.UserID, e.CourseID, e.Status, e.EnrolledAt,
		c.ID, c.Title, c.Description, c.Price, c.Level, c.ThumbnailURL,
		c.IsPublic, c.InstructorID, c.CategoryID, c.CreatedAt, c.UpdatedAt,
		u.ID, u.Email,
		cat.ID, cat.Name, cat.Slug,
		e.Table,
		c.Table, c.ID, e.CourseID,
		u.Table, u.ID, c.InstructorID,
		cat.Table, cat.ID, c.CategoryID,
		e.UserID,
		e.EnrolledAt, e.ID,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_enrollments")
	}
	defer rows.Close()

	enrollments := []*Enrollment{}
	for rows.Next() {
		var (
			item            Enrollment
			taken           course.Course
			instructorID    *int64
			instructorEmail *string
			categoryID      *int64
			categoryName    *string
			categorySlug    *string
		)

		err := rows.Scan(
			&item.ID, &item.UserID, &item.CourseID, &item.Status, &item.EnrolledAt,
			&taken.ID, &taken.Title, &taken.Description, &taken.Price, &taken.Level, &taken.ThumbnailURL,
			&taken.IsPublic, &taken.InstructorID, &taken.CategoryID, &taken.CreatedAt, &taken.UpdatedAt,
			&instructorID, &instructorEmail,
			&categoryID, &categoryName, &categorySlug,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_enrollment")
		}

		if instructorID != nil && instructorEmail != nil {
			taken.Instructor = &course.Instructor{ID: *instructorID, Email: *instructorEmail}
		}
		if categoryID != nil && categoryName != nil && categorySlug != nil {
			taken.Category = &course.CategoryRef{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
		}
		item.Course = &taken
		enrollments = append(enrollments, &item)
	}

	return enrollments, dberr.Wrap(rows.Err(), "list_enrollments")
}

func (repository *PostgresRepository) Delete(context context.Context, userID, courseID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Enrollment.Table, schema.Enrollment.UserID, schema.Enrollment.CourseID,
	)

	tag, err := repository.db.Exec(context, query, userID, courseID)
	if err != nil {
		return dberr.Wrap(err, "delete_enrollment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Enrollment")
	}
	return nil
}
