// Package order orquesta el registro de pedidos: evaluar factibilidad y comprometer el resultado,
// reintentando la secuencia completa cuando el ledger detecta una carrera sobre el inventario.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/ledger"
	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultMaxAttempts intentos de evaluar-comprometer ante domain.ErrReservationRace.
const DefaultMaxAttempts = 3

// Evaluator evalúa la factibilidad de un pedido (solo lectura).
type Evaluator interface {
	Evaluate(ctx context.Context, speciesID string, requested decimal.Decimal, delivery time.Time) (capacity.Decision, error)
}

// Committer registra la decisión de forma atómica.
type Committer interface {
	Commit(ctx context.Context, userID, granularity string, decision capacity.Decision) (*ledger.Commitment, error)
}

// Service casos de uso de pedidos.
type Service struct {
	evaluator       Evaluator
	committer       Committer
	txRunner        ledger.TxRunner
	orderRepo       repository.OrderRepository
	reservationRepo repository.ReservationRepository
	notifier        ports.AlertNotifier
	metrics         ports.Metrics
	maxAttempts     int
	now             func() time.Time
	log             *logger.Logger
}

// NewService construye el servicio de pedidos.
func NewService(
	evaluator Evaluator,
	committer Committer,
	txRunner ledger.TxRunner,
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
	notifier ports.AlertNotifier,
	metrics ports.Metrics,
	maxAttempts int,
	log *logger.Logger,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		evaluator:       evaluator,
		committer:       committer,
		txRunner:        txRunner,
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		metrics:         metrics,
		maxAttempts:     maxAttempts,
		now:             time.Now,
		log:             log,
	}
}

// Submit evalúa y compromete un pedido. Ante una carrera vuelve a evaluar desde cero; si se agotan
// los intentos devuelve domain.ErrReservationRace.
func (s *Service) Submit(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResultResponse, error) {
	if in.SpeciesID == "" || !in.DryVolume.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	delivery, err := time.Parse("2006-01-02", in.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de entrega %q", domain.ErrInvalidInput, in.DeliveryDate)
	}

	var (
		decision capacity.Decision
		result   *ledger.Commitment
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		decision, err = s.evaluator.Evaluate(ctx, in.SpeciesID, in.DryVolume, delivery)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidFactor) {
				s.log.Error().Err(err).Str("species_id", in.SpeciesID).Msg("factor de conversión inválido")
			}
			return nil, err
		}
		result, err = s.committer.Commit(ctx, userID, in.Granularity, decision)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrReservationRace) {
			return nil, err
		}
		s.metrics.ObserveReservationRace()
		s.log.Warn().
			Str("species_id", in.SpeciesID).
			Int("attempt", attempt).
			Msg("carrera al reservar inventario, se reevalúa el pedido")
	}
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveDecision(decision.Verdict)
	s.log.Info().
		Str("order_id", result.Order.ID).
		Str("species_id", in.SpeciesID).
		Str("decision", decision.Verdict).
		Str("shortfall", decision.Shortfall.String()).
		Msg("pedido registrado")

	out := &dto.OrderResultResponse{
		Order:     toOrderResponse(result.Order, result.Line, result.Reservations),
		Verdict:   decision.Verdict,
		Available: decision.Available,
		Shortfall: decision.Shortfall,
	}
	if result.Alert != nil {
		out.AlertID = result.Alert.ID
		out.Message = result.Alert.Message
		if err := s.notifier.NotifyAlert(ctx, result.Alert); err != nil {
			s.log.Warn().Err(err).Str("alert_id", result.Alert.ID).Msg("no se pudo encolar la notificación")
		}
	} else {
		out.Message = fmt.Sprintf("Pedido factible: %s kg reservados de %s kg disponibles",
			decision.Requested.StringFixed(2), decision.Available.StringFixed(2))
	}
	return out, nil
}

// Get obtiene un pedido con su línea y reservas.
func (s *Service) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	line, err := s.orderRepo.GetLineByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	var reservations []*entity.Reservation
	if line != nil {
		if reservations, err = s.reservationRepo.ListByOrderLine(ctx, line.ID); err != nil {
			return nil, err
		}
	}
	resp := toOrderResponse(o, line, reservations)
	return &resp, nil
}

// List lista pedidos, más recientes primero.
func (s *Service) List(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := s.orderRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		line, err := s.orderRepo.GetLineByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrderResponse(o, line, nil))
	}
	return out, nil
}

// Complete marca un pedido FEASIBLE como COMPLETED y consume sus reservas.
func (s *Service) Complete(ctx context.Context, id string) (*dto.OrderResponse, error) {
	now := s.now()
	err := s.txRunner.Run(ctx, func(
		_ repository.InventoryItemRepository,
		orderRepo repository.OrderRepository,
		reservationRepo repository.ReservationRepository,
		_ repository.AlertRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusFeasible {
			return fmt.Errorf("%w: pedido en estado %s", domain.ErrInvalidTransition, o.Status)
		}
		line, err := orderRepo.GetLineByOrder(ctx, id)
		if err != nil {
			return err
		}
		if line != nil {
			if err := reservationRepo.UpdateStatusByOrderLine(ctx, line.ID, entity.ReservationStatusConsumed); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(ctx, id, entity.OrderStatusCompleted, now)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", id).Msg("pedido completado")
	return s.Get(ctx, id)
}

func toOrderResponse(o *entity.Order, line *entity.OrderLine, reservations []*entity.Reservation) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		DeliveryDate: o.DeliveryDate.Format("2006-01-02"),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		Reservations: make([]dto.ReservationResponse, 0, len(reservations)),
	}
	if line != nil {
		resp.SpeciesID = line.SpeciesID
		resp.DryVolume = line.DryVolume
		resp.Granularity = line.Granularity
		resp.ForecastBacked = line.ForecastBacked
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, dto.ReservationResponse{
			ID:              r.ID,
			InventoryItemID: r.InventoryItemID,
			Quantity:        r.Quantity,
			Status:          r.Status,
			ReservedAt:      r.ReservedAt,
		})
	}
	return resp
}
