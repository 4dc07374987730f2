// Package forecast genera las proyecciones de capacidad a 7 y 14 días por especie y anota el
// resultado con la señal climática cuando está disponible.
package forecast

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// HistoricalForecaster media ponderada de las proyecciones a 7 días dentro de una ventana.
type HistoricalForecaster struct {
	forecastRepo repository.ForecastRepository
	windowDays   int
	optimism     decimal.Decimal
	now          func() time.Time
}

// NewHistoricalForecaster construye el forecaster. Valores <= 0 toman los defaults (30 días, 1.05).
func NewHistoricalForecaster(forecastRepo repository.ForecastRepository, windowDays int, optimism decimal.Decimal) *HistoricalForecaster {
	if windowDays <= 0 {
		windowDays = capacity.DefaultWindowDays
	}
	if !optimism.IsPositive() {
		optimism = capacity.DefaultOptimism
	}
	return &HistoricalForecaster{forecastRepo: forecastRepo, windowDays: windowDays, optimism: optimism, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (f *HistoricalForecaster) WithClock(now func() time.Time) *HistoricalForecaster {
	f.now = now
	return f
}

// Forecast7Days media de las proyecciones a 7 días de la ventana × optimismo.
// Sin historial devuelve HasHistory=false: el llamador debe usar la estimación por inventario vivo.
func (f *HistoricalForecaster) Forecast7Days(ctx context.Context, speciesID string) (capacity.HistoricalEstimate, error) {
	since := f.now().AddDate(0, 0, -f.windowDays)
	history, err := f.forecastRepo.ListSince(ctx, speciesID, entity.Horizon7Days, since)
	if err != nil {
		return capacity.HistoricalEstimate{}, err
	}
	return capacity.HistoricalMean(history, f.optimism), nil
}

// Forecast14Days extrapolación fija desde la capacidad a 7 días.
func (f *HistoricalForecaster) Forecast14Days(capacity7Days decimal.Decimal) decimal.Decimal {
	return capacity.Forecast14Days(capacity7Days)
}
