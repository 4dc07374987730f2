package feasibility

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/shopspring/decimal"
)

// Evaluator clasifica un pedido como FEASIBLE o AT_RISK. Es de solo lectura: no registra nada.
type Evaluator struct {
	aggregator *CapacityAggregator
	loc        *time.Location
	now        func() time.Time
}

// NewEvaluator construye el evaluador. loc define qué día es "hoy" para el plazo de entrega.
func NewEvaluator(aggregator *CapacityAggregator, loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &Evaluator{aggregator: aggregator, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	e.now = now
	return e
}

// Today fecha actual en la zona horaria configurada.
func (e *Evaluator) Today() time.Time {
	return e.now().In(e.loc)
}

// Evaluate calcula el plazo, la capacidad disponible y el veredicto para requested kg secos entregados en delivery.
func (e *Evaluator) Evaluate(ctx context.Context, speciesID string, requested decimal.Decimal, delivery time.Time) (capacity.Decision, error) {
	if !requested.IsPositive() {
		return capacity.Decision{}, domain.ErrInvalidInput
	}
	lead, err := capacity.LeadDays(e.Today(), delivery)
	if err != nil {
		return capacity.Decision{}, err
	}
	c, err := e.aggregator.AvailableCapacity(ctx, speciesID, lead)
	if err != nil {
		return capacity.Decision{}, err
	}
	verdict, shortfall := capacity.Decide(c.Total, requested)
	return capacity.Decision{
		SpeciesID:        speciesID,
		Requested:        requested,
		DeliveryDate:     delivery,
		LeadDays:         lead,
		StockCapacity:    c.Stock,
		ForecastCapacity: c.Forecast,
		Available:        c.Total,
		Verdict:          verdict,
		Shortfall:        shortfall,
	}, nil
}

// Capacity consulta la capacidad de una especie para un plazo (GET /api/capacity).
func (e *Evaluator) Capacity(ctx context.Context, speciesID string, leadDays int) (*dto.CapacityResponse, error) {
	c, err := e.aggregator.AvailableCapacity(ctx, speciesID, leadDays)
	if err != nil {
		return nil, err
	}
	return &dto.CapacityResponse{
		SpeciesID:           c.SpeciesID,
		LeadDays:            c.LeadDays,
		StockCapacity:       c.Stock,
		ForecastCapacity:    c.Forecast,
		ForecastHorizonDays: c.ForecastHorizon,
		Total:               c.Total,
	}, nil
}
