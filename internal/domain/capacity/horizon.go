package capacity

import "github.com/jhoicas/Proyeccion-api/internal/domain/entity"

// MaxHorizonDays mayor horizonte proyectado; más allá solo cuenta el stock actual.
const MaxHorizonDays = entity.Horizon14Days

// IsValidHorizon indica si days es un horizonte soportado (7 o 14).
func IsValidHorizon(days int) bool {
	return days == entity.Horizon7Days || days == entity.Horizon14Days
}

// SelectCovering elige, entre forecasts de una misma especie, la proyección aplicable a leadDays:
// el menor horizonte >= leadDays y, dentro de él, la generada más recientemente. nil si ninguna cubre.
func SelectCovering(forecasts []*entity.CapacityForecast, leadDays int) *entity.CapacityForecast {
	var best *entity.CapacityForecast
	for _, f := range forecasts {
		if f.HorizonDays < leadDays {
			continue
		}
		switch {
		case best == nil:
			best = f
		case f.HorizonDays < best.HorizonDays:
			best = f
		case f.HorizonDays == best.HorizonDays && f.GeneratedAt.After(best.GeneratedAt):
			best = f
		}
	}
	return best
}
