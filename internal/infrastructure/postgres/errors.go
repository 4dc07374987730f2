package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// insertError traduce violaciones de constraints al insertar: único → ErrDuplicate,
// llave foránea → ErrNotFound (padre inexistente), check → ErrInvalidInput.
func insertError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case codeCheckViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// deleteError traduce la violación de llave foránea al borrar en ErrConflict (protect-on-delete).
func deleteError(op string, err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		return domain.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// updateError traduce el check de cantidad no negativa en ErrInvalidInput.
func updateError(op string, err error) error {
	if pgCode(err) == codeCheckViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
