package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository       = (*OrderRepo)(nil)
	_ repository.ReservationRepository = (*ReservationRepo)(nil)
)

// OrderRepo pedidos y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, user_id, delivery_date, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var userID *string
	if err := row.Scan(&o.ID, &userID, &o.DeliveryDate, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if userID != nil {
		o.UserID = *userID
	}
	return &o, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, o.ID, nullable(o.UserID), o.DeliveryDate, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return insertError("insert order", err)
	}
	return nil
}

// CreateLine persiste la línea del pedido (una por pedido, UNIQUE order_id).
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, species_id, dry_volume, granularity, status, forecast_backed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.SpeciesID, l.DryVolume, l.Granularity, l.Status, l.ForecastBacked)
	if err != nil {
		return insertError("insert order line", err)
	}
	return nil
}

// GetByID obtiene un pedido (nil si no existe).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando la fila.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetLineByOrder obtiene la línea del pedido (nil si no existe).
func (r *OrderRepo) GetLineByOrder(ctx context.Context, orderID string) (*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, species_id, dry_volume, granularity, status, forecast_backed
		FROM order_lines WHERE order_id = $1`
	var l entity.OrderLine
	err := r.q.QueryRow(ctx, query, orderID).Scan(
		&l.ID, &l.OrderID, &l.SpeciesID, &l.DryVolume, &l.Granularity, &l.Status, &l.ForecastBacked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return &l, nil
}

// UpdateStatus cambia el estado del pedido y de su línea.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return updateError("update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `UPDATE order_lines SET status = $2 WHERE order_id = $1`, id, status); err != nil {
		return updateError("update order line status", err)
	}
	return nil
}

// List pedidos más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ReservationRepo reservas de inventario sobre PostgreSQL.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de reservas.
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create persiste una reserva.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, order_line_id, inventory_item_id, quantity, status, reserved_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, res.ID, res.OrderLineID, res.InventoryItemID, res.Quantity, res.Status, res.ReservedAt)
	if err != nil {
		return insertError("insert reservation", err)
	}
	return nil
}

// ListByOrderLine reservas de una línea de pedido.
func (r *ReservationRepo) ListByOrderLine(ctx context.Context, orderLineID string) ([]*entity.Reservation, error) {
	query := `
		SELECT id, order_line_id, inventory_item_id, quantity, status, reserved_at
		FROM reservations WHERE order_line_id = $1 ORDER BY reserved_at, id`
	rows, err := r.q.Query(ctx, query, orderLineID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var out []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(&res.ID, &res.OrderLineID, &res.InventoryItemID, &res.Quantity, &res.Status, &res.ReservedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

// UpdateStatusByOrderLine cambia el estado de todas las reservas de la línea.
func (r *ReservationRepo) UpdateStatusByOrderLine(ctx context.Context, orderLineID, status string) error {
	if _, err := r.q.Exec(ctx, `UPDATE reservations SET status = $2 WHERE order_line_id = $1`, orderLineID, status); err != nil {
		return updateError("update reservations", err)
	}
	return nil
}
