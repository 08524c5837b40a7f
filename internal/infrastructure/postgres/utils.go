package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el código 23505 de PostgreSQL. Los repos lo traducen
// a domain.ErrConflict: nombre de item por bodega, email de usuario, nombre de
// empresa y camera_api_key dependen de sus índices únicos, no de prechequeos.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// errores envueltos fuera de la cadena de pgconn
	return strings.Contains(err.Error(), "23505")
}
