// Package capacity contiene la lógica pura de proyección de capacidad y factibilidad de pedidos:
// media histórica ponderada, extrapolación a 14 días, selección de horizonte y decisión FEASIBLE/AT_RISK.
package capacity

import (
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultWindowDays ventana de historial usada por la media de proyecciones a 7 días.
const DefaultWindowDays = 30

var (
	// DefaultOptimism ponderación aplicada a la media histórica (+5%).
	DefaultOptimism = decimal.RequireFromString("1.05")
	// Extrapolation14Days factor fijo 7 → 14 días (+60% en la segunda semana).
	Extrapolation14Days = decimal.RequireFromString("1.6")
	// DefaultFallbackUtilization fracción del stock vivo seco usada como proyección a 7 días sin historial.
	DefaultFallbackUtilization = decimal.RequireFromString("0.50")
)

// HistoricalEstimate resultado de la media histórica.
// HasHistory=false es la señal "sin historial": Capacity vale cero y NO debe usarse como proyección real.
type HistoricalEstimate struct {
	Capacity   decimal.Decimal
	HasHistory bool
	Samples    int
}

// HistoricalMean calcula la media aritmética de las proyecciones a 7 días y la pondera por optimism.
func HistoricalMean(history []*entity.CapacityForecast, optimism decimal.Decimal) HistoricalEstimate {
	if len(history) == 0 {
		return HistoricalEstimate{Capacity: decimal.Zero}
	}
	sum := decimal.Zero
	for _, f := range history {
		sum = sum.Add(f.EstimatedCapacity)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(history))))
	return HistoricalEstimate{
		Capacity:   mean.Mul(optimism),
		HasHistory: true,
		Samples:    len(history),
	}
}

// Forecast14Days extrapola la capacidad a 14 días desde la de 7 días.
func Forecast14Days(capacity7Days decimal.Decimal) decimal.Decimal {
	return capacity7Days.Mul(Extrapolation14Days)
}

// ColdStartEstimate estimación a 7 días basada en inventario vivo cuando no hay historial.
func ColdStartEstimate(liveDryCapacity, utilization decimal.Decimal) decimal.Decimal {
	return liveDryCapacity.Mul(utilization)
}
