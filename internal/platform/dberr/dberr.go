// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Mapping
//   - pgx.ErrNoRows      → 404 NOT_FOUND
//   - unique_violation   → 409 CONFLICT
//   - foreign_key        → 404 NOT_FOUND (the referenced row is gone)
//   - check_violation    → 422 VALIDATION_FAILED
//   - anything else      → 500 DATABASE_ERROR (cause kept for logs)
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("Resource already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			missing := apperr.NotFound("Referenced resource")
			missing.Cause = err
			return missing
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			invalid := apperr.ValidationError("Value violates a data constraint")
			invalid.Cause = err
			return invalid
		}
	}

	return apperr.Database(fmt.Errorf("%s: %w", action, err))
}

// WrapEntity behaves like [Wrap] but names the missing entity in 404 responses.
func WrapEntity(err error, entity, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return Wrap(err, action)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
