package repository

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// ZoneRepository define el puerto de persistencia para Zone (dato de referencia).
type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.Zone) error
	GetByID(ctx context.Context, id string) (*entity.Zone, error)
	List(ctx context.Context) ([]*entity.Zone, error)
	// Delete devuelve domain.ErrConflict si la zona está referenciada.
	Delete(ctx context.Context, id string) error
}
