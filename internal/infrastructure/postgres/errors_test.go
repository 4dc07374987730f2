package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTraduccionDeErroresPostgres(t *testing.T) {
	unique := &pgconn.PgError{Code: codeUniqueViolation}
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}
	check := &pgconn.PgError{Code: codeCheckViolation}
	other := errors.New("conexión cerrada")

	assert.ErrorIs(t, insertError("insert", unique), domain.ErrDuplicate)
	assert.ErrorIs(t, insertError("insert", fk), domain.ErrNotFound)
	assert.ErrorIs(t, insertError("insert", check), domain.ErrInvalidInput)
	assert.ErrorIs(t, insertError("insert", other), other)

	assert.ErrorIs(t, deleteError("delete", fk), domain.ErrConflict)
	assert.ErrorIs(t, deleteError("delete", other), other)

	assert.ErrorIs(t, updateError("update", check), domain.ErrInvalidInput)
}
