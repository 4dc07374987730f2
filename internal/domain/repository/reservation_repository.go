package repository

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para reservas de inventario.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	ListByOrderLine(ctx context.Context, orderLineID string) ([]*entity.Reservation, error)
	UpdateStatusByOrderLine(ctx context.Context, orderLineID, status string) error
}
