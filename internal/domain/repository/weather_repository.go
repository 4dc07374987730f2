package repository

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// WeatherRepository persiste la lectura climática diaria (una por fecha).
type WeatherRepository interface {
	Upsert(ctx context.Context, reading *entity.WeatherReading) error
}
