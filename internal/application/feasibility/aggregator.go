package feasibility

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/inventory"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Capacity capacidad seca disponible de una especie para un plazo de entrega.
type Capacity struct {
	SpeciesID       string
	LeadDays        int
	Stock           decimal.Decimal // LIVE convertido + DRY
	Forecast        decimal.Decimal
	ForecastHorizon int // 0 si ninguna proyección cubre el plazo
	Total           decimal.Decimal
}

// CapacityAggregator combina el stock actual con la proyección aplicable al plazo.
type CapacityAggregator struct {
	speciesRepo  repository.SpeciesRepository
	itemRepo     repository.InventoryItemRepository
	forecastRepo repository.ForecastRepository
}

// NewCapacityAggregator construye el agregador.
func NewCapacityAggregator(
	speciesRepo repository.SpeciesRepository,
	itemRepo repository.InventoryItemRepository,
	forecastRepo repository.ForecastRepository,
) *CapacityAggregator {
	return &CapacityAggregator{speciesRepo: speciesRepo, itemRepo: itemRepo, forecastRepo: forecastRepo}
}

// ConversionFactor devuelve el factor validado de la especie.
// ErrNotFound si no existe; ErrInvalidFactor si el factor es <= 0.
func (a *CapacityAggregator) ConversionFactor(ctx context.Context, speciesID string) (decimal.Decimal, error) {
	sp, err := a.speciesRepo.GetByID(ctx, speciesID)
	if err != nil {
		return decimal.Zero, err
	}
	if sp == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	if err := inventory.ValidateFactor(sp.ConversionFactor); err != nil {
		return decimal.Zero, fmt.Errorf("especie %s: %w", sp.Name, err)
	}
	return sp.ConversionFactor, nil
}

// StockCapacity suma el inventario LIVE (convertido a seco) y DRY de la especie. DRYING no cuenta.
func (a *CapacityAggregator) StockCapacity(ctx context.Context, speciesID string, factor decimal.Decimal) (decimal.Decimal, error) {
	live, err := a.itemRepo.SumBySpeciesAndState(ctx, speciesID, entity.ItemStateLive)
	if err != nil {
		return decimal.Zero, err
	}
	dry, err := a.itemRepo.SumBySpeciesAndState(ctx, speciesID, entity.ItemStateDry)
	if err != nil {
		return decimal.Zero, err
	}
	liveDry, err := inventory.DryCapacity(live, factor)
	if err != nil {
		return decimal.Zero, err
	}
	return liveDry.Add(dry), nil
}

// AvailableCapacity stock actual + proyección más reciente del menor horizonte >= leadDays.
// Si leadDays supera el mayor horizonte solo cuenta el stock.
func (a *CapacityAggregator) AvailableCapacity(ctx context.Context, speciesID string, leadDays int) (*Capacity, error) {
	if leadDays < 0 {
		return nil, domain.ErrPastDeliveryDate
	}
	factor, err := a.ConversionFactor(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	stock, err := a.StockCapacity(ctx, speciesID, factor)
	if err != nil {
		return nil, err
	}

	out := &Capacity{SpeciesID: speciesID, LeadDays: leadDays, Stock: stock, Forecast: decimal.Zero}
	if leadDays <= capacity.MaxHorizonDays {
		f, err := a.forecastRepo.LatestCovering(ctx, speciesID, leadDays)
		if err != nil {
			return nil, err
		}
		if f != nil {
			out.Forecast = f.EstimatedCapacity
			out.ForecastHorizon = f.HorizonDays
		}
	}
	out.Total = out.Stock.Add(out.Forecast)
	return out, nil
}
