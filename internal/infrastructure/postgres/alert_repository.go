package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, recipient_id, type, message, level, created_at, notified`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	if err := row.Scan(&a.ID, &a.RecipientID, &a.Type, &a.Message, &a.Level, &a.CreatedAt, &a.Notified); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una alerta.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `INSERT INTO alerts (` + alertColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.RecipientID, a.Type, a.Message, a.Level, a.CreatedAt, a.Notified); err != nil {
		return insertError("insert alert", err)
	}
	return nil
}

// GetByID obtiene una alerta (nil si no existe).
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// ListByRecipient alertas del destinatario (vacío = todas), más recientes primero.
func (r *AlertRepo) ListByRecipient(ctx context.Context, recipientID string, onlyPending bool, limit, offset int) ([]*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE ($1 = '' OR recipient_id = $1) AND (NOT $2 OR notified = false)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, recipientID, onlyPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MarkNotified marca la alerta como notificada.
func (r *AlertRepo) MarkNotified(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET notified = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert notified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
