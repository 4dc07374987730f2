package repository

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BatchRepository define el puerto de persistencia para lotes (append-only).
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	SetFinalDryMass(ctx context.Context, id string, dryMass decimal.Decimal) error
}
