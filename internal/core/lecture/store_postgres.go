// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lecture

import (
	"context"
	"fmt"
	"strings"

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

var lectureColumns = strings.Join(schema.Lecture.Columns(), ", ")

func (repository *PostgresRepository) ListByCourse(context context.Context, courseID int64) ([]*Lecture, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		lectureColumns, schema.Lecture.Table, schema.Lecture.CourseID,
		schema.Lecture.OrderIndex, schema.Lecture.ID,
	)

	rows, err := repository.db.Query(context, query, courseID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_lectures")
	}
	defer rows.Close()

	lectures := []*Lecture{}
	for rows.Next() {
		l := &Lecture{}
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.VideoURL, &l.OrderIndex, &l.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_lecture")
		}
		lectures = append(lectures, l)
	}

	return lectures, dberr.Wrap(rows.Err(), "list_lectures")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Lecture, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		lectureColumns, schema.Lecture.Table, schema.Lecture.ID,
	)

	l := &Lecture{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&l.ID, &l.CourseID, &l.Title, &l.VideoURL, &l.OrderIndex, &l.CreatedAt)
	if err != nil {
		return nil, dberr.WrapEntity(err, "Lecture", "get_lecture")
	}
	return l, nil
}

func (repository *PostgresRepository) Create(context context.Context, l *Lecture) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.Lecture.Table,
		schema.Lecture.CourseID, schema.Lecture.Title, schema.Lecture.VideoURL, schema.Lecture.OrderIndex,
		schema.Lecture.ID, schema.Lecture.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, l.CourseID, l.Title, l.VideoURL, l.OrderIndex).
		Scan(&l.ID, &l.CreatedAt)
	return dberr.Wrap(err, "create_lecture")
}

func (repository *PostgresRepository) Update(context context.Context, l *Lecture) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		schema.Lecture.Table,
		schema.Lecture.Title, schema.Lecture.VideoURL, schema.Lecture.OrderIndex,
		schema.Lecture.ID,
	)

	tag, err := repository.db.Exec(context, query, l.Title, l.VideoURL, l.OrderIndex, l.ID)
	if err != nil {
		return dberr.Wrap(err, "update_lecture")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Lecture")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Lecture.Table, schema.Lecture.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_lecture")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Lecture")
	}
	return nil
}
