// Package ledger registra el resultado de una evaluación de factibilidad: reserva inventario
// contra un pedido FEASIBLE o levanta una alerta CRITICAL para uno AT_RISK, en una sola transacción.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/inventory"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Commitment resultado del compromiso. Reservations vacío y Alert != nil si el pedido quedó AT_RISK.
type Commitment struct {
	Order        *entity.Order
	Line         *entity.OrderLine
	Reservations []*entity.Reservation
	Alert        *entity.Alert
}

// ReservationLedger aplica la decisión de factibilidad de forma atómica.
type ReservationLedger struct {
	txRunner    TxRunner
	speciesRepo repository.SpeciesRepository
	recipientID string
	now         func() time.Time
	log         *logger.Logger
}

// NewReservationLedger construye el ledger. recipientID es el destinatario de las alertas de riesgo.
func NewReservationLedger(txRunner TxRunner, speciesRepo repository.SpeciesRepository, recipientID string, log *logger.Logger) *ReservationLedger {
	if log == nil {
		log = logger.Nop()
	}
	return &ReservationLedger{
		txRunner:    txRunner,
		speciesRepo: speciesRepo,
		recipientID: recipientID,
		now:         time.Now,
		log:         log,
	}
}

// WithClock reemplaza el reloj (tests).
func (l *ReservationLedger) WithClock(now func() time.Time) *ReservationLedger {
	l.now = now
	return l
}

// Commit crea el pedido y su línea y, según el veredicto, reserva inventario o registra la alerta.
// Si al bloquear el inventario ya no alcanza para un pedido FEASIBLE, o no queda ningún item
// utilizable de la especie, devuelve domain.ErrReservationRace sin escribir nada; el llamador debe volver a evaluar.
func (l *ReservationLedger) Commit(ctx context.Context, userID, granularity string, decision capacity.Decision) (*Commitment, error) {
	if decision.Verdict != capacity.VerdictFeasible && decision.Verdict != capacity.VerdictAtRisk {
		return nil, domain.ErrInvalidInput
	}
	if !decision.Requested.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var factor decimal.Decimal
	if decision.Feasible() {
		sp, err := l.speciesRepo.GetByID(ctx, decision.SpeciesID)
		if err != nil {
			return nil, err
		}
		if sp == nil {
			return nil, domain.ErrNotFound
		}
		if err := inventory.ValidateFactor(sp.ConversionFactor); err != nil {
			return nil, err
		}
		factor = sp.ConversionFactor
	}

	now := l.now()
	out := &Commitment{
		Order: &entity.Order{
			ID:           uuid.New().String(),
			UserID:       userID,
			DeliveryDate: decision.DeliveryDate,
			Status:       entity.OrderStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	out.Line = &entity.OrderLine{
		ID:             uuid.New().String(),
		OrderID:        out.Order.ID,
		SpeciesID:      decision.SpeciesID,
		DryVolume:      decision.Requested,
		Granularity:    granularity,
		Status:         entity.OrderStatusPending,
		ForecastBacked: decimal.Zero,
	}

	err := l.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		orderRepo repository.OrderRepository,
		reservationRepo repository.ReservationRepository,
		alertRepo repository.AlertRepository,
	) error {
		out.Reservations = nil
		out.Alert = nil
		if decision.Feasible() {
			return l.reserve(ctx, itemRepo, orderRepo, reservationRepo, out, decision, factor, now)
		}
		return l.raise(ctx, orderRepo, alertRepo, out, decision, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *ReservationLedger) reserve(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
	out *Commitment,
	decision capacity.Decision,
	factor decimal.Decimal,
	now time.Time,
) error {
	// Bloquea el inventario utilizable de la especie, más recientemente tocado primero.
	items, err := itemRepo.ListForUpdateBySpecies(ctx, decision.SpeciesID, entity.ItemStateLive, entity.ItemStateDry)
	if err != nil {
		return err
	}
	available := make([]decimal.Decimal, len(items))
	locked := decimal.Zero
	for i, item := range items {
		a, err := availableDry(item, factor)
		if err != nil {
			return err
		}
		available[i] = a
		locked = locked.Add(a)
	}
	// Sin stock físico no hay dónde anclar la reserva: la proyección sola no basta.
	if !locked.IsPositive() {
		l.log.Warn().
			Str("species_id", decision.SpeciesID).
			Str("requested", decision.Requested.String()).
			Str("forecast", decision.ForecastCapacity.String()).
			Msg("sin inventario utilizable al comprometer pedido factible")
		return fmt.Errorf("especie %s sin inventario: %w", decision.SpeciesID, domain.ErrReservationRace)
	}
	if locked.Add(decision.ForecastCapacity).LessThan(decision.Requested) {
		l.log.Warn().
			Str("species_id", decision.SpeciesID).
			Str("requested", decision.Requested.String()).
			Str("locked_stock", locked.String()).
			Str("forecast", decision.ForecastCapacity.String()).
			Msg("inventario insuficiente al comprometer pedido factible")
		return fmt.Errorf("especie %s: %w", decision.SpeciesID, domain.ErrReservationRace)
	}

	if err := orderRepo.Create(ctx, out.Order); err != nil {
		return err
	}
	if err := orderRepo.CreateLine(ctx, out.Line); err != nil {
		return err
	}

	remaining := decision.Requested
	for i, item := range items {
		if !remaining.IsPositive() {
			break
		}
		if !available[i].IsPositive() {
			continue
		}
		take := decimal.Min(available[i], remaining)
		left := decimal.Zero
		if take.LessThan(available[i]) {
			used := take
			if item.IsWet() {
				if used, err = inventory.WetEquivalent(take, factor); err != nil {
					return err
				}
			}
			// La división de DryCapacity redondea; nunca dejar cantidad negativa.
			left = decimal.Max(item.Quantity.Sub(used), decimal.Zero)
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, left, now); err != nil {
			return err
		}
		res := &entity.Reservation{
			ID:              uuid.New().String(),
			OrderLineID:     out.Line.ID,
			InventoryItemID: item.ID,
			Quantity:        take,
			Status:          entity.ReservationStatusReserved,
			ReservedAt:      now,
		}
		if err := reservationRepo.Create(ctx, res); err != nil {
			return err
		}
		out.Reservations = append(out.Reservations, res)
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		out.Line.ForecastBacked = remaining
	}
	out.Order.Status = entity.OrderStatusFeasible
	out.Line.Status = entity.OrderStatusFeasible
	out.Order.UpdatedAt = now
	return orderRepo.UpdateStatus(ctx, out.Order.ID, entity.OrderStatusFeasible, now)
}

func (l *ReservationLedger) raise(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	alertRepo repository.AlertRepository,
	out *Commitment,
	decision capacity.Decision,
	now time.Time,
) error {
	out.Order.Status = entity.OrderStatusAtRisk
	out.Line.Status = entity.OrderStatusAtRisk
	if err := orderRepo.Create(ctx, out.Order); err != nil {
		return err
	}
	if err := orderRepo.CreateLine(ctx, out.Line); err != nil {
		return err
	}
	out.Alert = &entity.Alert{
		ID:          uuid.New().String(),
		RecipientID: l.recipientID,
		Type:        entity.AlertTypeDeliveryRisk,
		Message: fmt.Sprintf("Riesgo: Pedido %s supera la capacidad en %s kg. Fecha: %s",
			out.Order.ID, decision.Shortfall.StringFixed(2), decision.DeliveryDate.Format("2006-01-02")),
		Level:     entity.AlertLevelCritical,
		CreatedAt: now,
	}
	return alertRepo.Create(ctx, out.Alert)
}

// availableDry disponibilidad seca de un item: LIVE se convierte con el factor, DRY tal cual.
func availableDry(item *entity.InventoryItem, factor decimal.Decimal) (decimal.Decimal, error) {
	if item.IsWet() {
		return inventory.DryCapacity(item.Quantity, factor)
	}
	return item.Quantity, nil
}
