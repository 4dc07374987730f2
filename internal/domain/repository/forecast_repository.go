package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// ForecastRepository define el puerto del log append-only de proyecciones de capacidad.
type ForecastRepository interface {
	Create(ctx context.Context, forecast *entity.CapacityForecast) error
	// ListSince devuelve las proyecciones de la especie y horizonte generadas en o después de since.
	ListSince(ctx context.Context, speciesID string, horizonDays int, since time.Time) ([]*entity.CapacityForecast, error)
	// LatestCovering devuelve la proyección más reciente del menor horizonte >= leadDays, o nil si ninguna aplica.
	LatestCovering(ctx context.Context, speciesID string, leadDays int) (*entity.CapacityForecast, error)
	// Latest devuelve la proyección más reciente de la especie para el horizonte dado, o nil.
	Latest(ctx context.Context, speciesID string, horizonDays int) (*entity.CapacityForecast, error)
}
