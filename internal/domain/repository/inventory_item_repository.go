package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryItemRepository define el puerto para consultar/actualizar el inventario vivo y seco.
// Las variantes ForUpdate bloquean las filas y solo tienen sentido dentro de una transacción.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// SumBySpeciesAndState suma Quantity de los items de la especie en el estado dado (cero si no hay).
	SumBySpeciesAndState(ctx context.Context, speciesID, state string) (decimal.Decimal, error)
	// ListForUpdateBySpecies bloquea y devuelve los items de la especie en los estados dados,
	// ordenados del más recientemente actualizado al más antiguo.
	ListForUpdateBySpecies(ctx context.Context, speciesID string, states ...string) ([]*entity.InventoryItem, error)
	// SpeciesWithStock devuelve los IDs de especie que tienen Quantity > 0 en el estado dado.
	SpeciesWithStock(ctx context.Context, state string) ([]string, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error
	UpdateState(ctx context.Context, id, state string, quantity decimal.Decimal, updatedAt time.Time) error
}
