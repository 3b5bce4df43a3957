package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// validID evita mandar a Postgres un id que no es UUID (fallaría con 22P02 en vez de "no existe").
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de foreign key (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isCheckViolation 23514, p.ej. quantity >= 0.
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

// isOutOfRange 22003, p.ej. un total que no cabe en NUMERIC(12,2).
func isOutOfRange(err error) bool {
	return pgCode(err) == "22003"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
