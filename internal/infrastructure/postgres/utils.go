package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados para traducir errores a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgErrorCode(err) == codeUniqueViolation }

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool { return pgErrorCode(err) == codeForeignKeyViolation }

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool { return pgErrorCode(err) == codeCheckViolation }

func isNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

// nullableString convierte "" en NULL para columnas uuid opcionales.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
