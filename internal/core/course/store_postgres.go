// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/database/schema"
	"github.com/donghun712/wsd-term-proj/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Query Builders

// selectFrom returns the SELECT list and FROM clause shared by every read.
// Instructor and category are LEFT JOINed because both references are nullable.
func selectFrom() string {
	c, u, cat := schema.Course, schema.User, schema.Category
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       u.%s, u.%s,
		       cat.%s, cat.%s, cat.%s
		FROM %s c
		LEFT JOIN %s u ON u.%s = c.%s
		LEFT JOIN %s cat ON cat.%s = c.%s
	`,
		c.ID, c.Title, c.Description, c.Price, c.Level, c.ThumbnailURL,
		c.IsPublic, c.InstructorID, c.CategoryID, c.CreatedAt, c.UpdatedAt,
		u.ID, u.Email,
		cat.ID, cat.Name, cat.Slug,
		c.Table,
		u.Table, u.ID, c.InstructorID,
		cat.Table, cat.ID, c.CategoryID,
	)
}

func scanCourse(row pgx.Row) (*Course, error) {
	var (
		course          Course
		instructorID    *int64
		instructorEmail *string
		categoryID      *int64
		categoryName    *string
		categorySlug    *string
	)

	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.Price, &course.Level, &course.ThumbnailURL,
		&course.IsPublic, &course.InstructorID, &course.CategoryID, &course.CreatedAt, &course.UpdatedAt,
		&instructorID, &instructorEmail,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, err
	}

	if instructorID != nil && instructorEmail != nil {
		course.Instructor = &Instructor{ID: *instructorID, Email: *instructorEmail}
	}
	if categoryID != nil && categoryName != nil && categorySlug != nil {
		course.Category = &CategoryRef{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	return &course, nil
}

// escapeLike neutralizes LIKE wildcards in user input. The default escape
// character in PostgreSQL is the backslash.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// publicWhere builds the WHERE clause for public listings and returns its arguments.
func publicWhere(f Filter) (string, []any) {
	conditions := []string{fmt.Sprintf("c.%s = TRUE", schema.Course.IsPublic)}
	args := []any{}

	if keyword := strings.TrimSpace(f.Keyword); keyword != "" {
		args = append(args, "%"+escapeLike(keyword)+"%")
		conditions = append(conditions, fmt.Sprintf("c.%s ILIKE $%d", schema.Course.Title, len(args)))
	}

	if categorySlug := strings.TrimSpace(f.CategorySlug); categorySlug != "" {
		args = append(args, categorySlug)
		conditions = append(conditions, fmt.Sprintf("cat.%s = $%d", schema.Category.Slug, len(args)))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (repository *PostgresRepository) collect(context context.Context, query string, args ...any) ([]*Course, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_courses")
	}
	defer rows.Close()

	courses := []*Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_course")
		}
		courses = append(courses, course)
	}

	return courses, dberr.Wrap(rows.Err(), "list_courses")
}

// # Reads

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*Course, int, error) {
	where, args := publicWhere(f)

	// ── 1. Total ─────────────────────────────────────────────────────────
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s c
		LEFT JOIN %s cat ON cat.%s = c.%s
	`, schema.Course.Table, schema.Category.Table, schema.Category.ID, schema.Course.CategoryID) + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_courses")
	}

	// ── 2. Page ──────────────────────────────────────────────────────────
	args = append(args, limit, offset)
	query := selectFrom() + where + fmt.Sprintf(" ORDER BY c.%s ASC LIMIT $%d OFFSET $%d",
		schema.Course.ID, len(args)-1, len(args))

	courses, err := repository.collect(context, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (repository *PostgresRepository) Search(context context.Context, keyword string, limit int) ([]*Course, error) {
	where, args := publicWhere(Filter{Keyword: keyword})
	args = append(args, limit)
	query := selectFrom() + where + fmt.Sprintf(" ORDER BY c.%s ASC LIMIT $%d", schema.Course.ID, len(args))
	return repository.collect(context, query, args...)
}

func (repository *PostgresRepository) Recent(context context.Context, limit int) ([]*Course, error) {
	where, args := publicWhere(Filter{})
	args = append(args, limit)
	query := selectFrom() + where + fmt.Sprintf(" ORDER BY c.%s DESC LIMIT $%d", schema.Course.ID, len(args))
	return repository.collect(context, query, args...)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Course, error) {
	query := selectFrom() + fmt.Sprintf(" WHERE c.%s = $1", schema.Course.ID)

	course, err := scanCourse(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapEntity(err, "Course", "get_course")
	}
	return course, nil
}

// # Writes

func (repository *PostgresRepository) Create(context context.Context, c *Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s, %s
	`,
		schema.Course.Table,
		schema.Course.Title, schema.Course.Description, schema.Course.Price, schema.Course.Level,
		schema.Course.ThumbnailURL, schema.Course.IsPublic, schema.Course.InstructorID, schema.Course.CategoryID,
		schema.Course.ID, schema.Course.CreatedAt, schema.Course.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.Title, c.Description, c.Price, c.Level,
		c.ThumbnailURL, c.IsPublic, c.InstructorID, c.CategoryID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return dberr.Wrap(err, "create_course")
}

func (repository *PostgresRepository) Update(context context.Context, c *Course) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $8
		RETURNING %s
	`,
		schema.Course.Table,
		schema.Course.Title, schema.Course.Description, schema.Course.Price, schema.Course.Level,
		schema.Course.ThumbnailURL, schema.Course.IsPublic, schema.Course.CategoryID, schema.Course.UpdatedAt,
		schema.Course.ID,
		schema.Course.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.Title, c.Description, c.Price, c.Level,
		c.ThumbnailURL, c.IsPublic, c.CategoryID, c.ID,
	).Scan(&c.UpdatedAt)

	return dberr.WrapEntity(err, "Course", "update_course")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Course.Table, schema.Course.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_course")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}
	return nil
}
