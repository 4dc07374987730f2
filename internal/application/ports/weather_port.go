package ports

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// WeatherProvider define el puerto de salida hacia el proveedor climático externo.
// Es opcional: cualquier error se trata como "sin datos" y nunca bloquea la proyección.
// El contexto debe llevar un timeout acotado.
type WeatherProvider interface {
	CurrentConditions(ctx context.Context) (*entity.WeatherReading, error)
}
