package repository

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// SpeciesRepository define el puerto de persistencia para Species (dato de referencia).
type SpeciesRepository interface {
	Create(ctx context.Context, species *entity.Species) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Species, error)
	List(ctx context.Context) ([]*entity.Species, error)
	// Delete devuelve domain.ErrConflict si la especie está referenciada por lotes, inventario, pedidos o proyecciones.
	Delete(ctx context.Context, id string) error
}
