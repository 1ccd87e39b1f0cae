package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// pgErrorCode извлекает SQLSTATE из ошибки pgx/v5 (pgconn.PgError) или lib/pq
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isForeignKeyViolation проверяет нарушение внешнего ключа (23503)
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

// isUniqueViolation проверяет нарушение уникальности (23505)
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}
