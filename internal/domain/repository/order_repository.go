package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y su línea de detalle.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	GetLineByOrder(ctx context.Context, orderID string) (*entity.OrderLine, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
}
