// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/database/schema"
	"github.com/donghun712/wsd-term-proj/internal/platform/dberr"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// # Repository Implementation

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new Postgres-backed [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the select list shared by every read.
var userColumns = strings.Join(schema.User.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Provider,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

/*
FindByID retrieves a user record from the users table.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.User.Table, schema.User.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapEntity(err, "User", "postgres_user_repo_find_by_id")
	}
	return user, nil
}

// FindByEmail retrieves a user by exact email match.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.User.Table, schema.User.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.WrapEntity(err, "User", "postgres_user_repo_find_by_email")
	}
	return user, nil
}

// ExistsByEmail reports whether an account uses the given email.
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.User.Table, schema.User.Email)

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}
	return exists, nil
}

/*
Create inserts a new account.

Description: The unique index on email is the final arbiter when two signups
race; the violation surfaces as apperr.Conflict through [dberr.Wrap].

Parameters:
  - context: context.Context
  - user: *User (ID, CreatedAt and UpdatedAt are filled on success)

Returns:
  - error: Conflict or persistence failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.User.Table,
		schema.User.Email, schema.User.PasswordHash, schema.User.Role, schema.User.Provider,
		schema.User.ID, schema.User.CreatedAt, schema.User.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Provider,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "postgres_user_repo_create")
}

// List returns a page of accounts ordered by ID.
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.User.Table)
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_user_repo_count")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		userColumns, schema.User.Table, schema.User.ID)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_user_repo_list")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_user_repo_scan")
		}
		users = append(users, user)
	}

	return users, total, dberr.Wrap(rows.Err(), "postgres_user_repo_list")
}

// UpdatePassword replaces the stored hash and bumps updated_at.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.User.Table, schema.User.PasswordHash, schema.User.UpdatedAt, schema.User.ID)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// UpdateRole changes the role and returns the refreshed row.
func (repository *PostgresUserRepository) UpdateRole(context context.Context, userID int64, role sec.UserRole) (*User, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		schema.User.Table, schema.User.Role, schema.User.UpdatedAt, schema.User.ID, userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, userID, role))
	if err != nil {
		return nil, dberr.WrapEntity(err, "User", "postgres_user_repo_update_role")
	}
	return user, nil
}

// Delete removes the account row; dependent rows follow the FK rules.
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.User.Table, schema.User.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
