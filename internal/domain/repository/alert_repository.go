package repository

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// ListByRecipient lista alertas del destinatario, más recientes primero. recipientID vacío = todas.
	ListByRecipient(ctx context.Context, recipientID string, onlyPending bool, limit, offset int) ([]*entity.Alert, error)
	MarkNotified(ctx context.Context, id string) error
}
