// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donghun712/wsd-term-proj/internal/platform/database/schema"
	"github.com/donghun712/wsd-term-proj/internal/platform/dberr"
	"github.com/donghun712/wsd-term-proj/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug, schema.Category.CreatedAt,
		schema.Category.Table, schema.Category.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, dberr.Wrap(rows.Err(), "list_categories")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug, schema.Category.CreatedAt,
		schema.Category.Table, schema.Category.ID,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, dberr.WrapEntity(err, "Category", "get_category")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s
	`,
		schema.Category.Table, schema.Category.Name, schema.Category.Slug,
		schema.Category.ID, schema.Category.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) ExistsByName(context context.Context, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Category.Table, schema.Category.Name,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, name).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "category_exists_by_name")
	}
	return exists, nil
}

func (repository *PostgresRepository) EnsureAll(context context.Context, categories []*Category) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
		schema.Category.Table, schema.Category.Name, schema.Category.Slug,
	)

	created := 0
	err := postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		for _, c := range categories {
			tag, err := tx.Exec(context, query, c.Name, c.Slug)
			if err != nil {
				return dberr.Wrap(err, "ensure_category")
			}
			created += int(tag.RowsAffected())
		}
		return nil
	})

	return created, err
}
