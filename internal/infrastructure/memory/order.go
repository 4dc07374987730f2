package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository       = (*OrderRepository)(nil)
	_ repository.ReservationRepository = (*ReservationRepository)(nil)
	_ repository.AlertRepository       = (*AlertRepository)(nil)
)

// OrderRepository implementación en memoria de pedidos y líneas.
type OrderRepository struct {
	x *session
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	return r.x.do(func() error {
		if _, ok := r.x.s.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		r.x.s.orders[o.ID] = cloneOrder(o)
		r.x.onRollback(func() { delete(r.x.s.orders, o.ID) })
		return nil
	})
}

func (r *OrderRepository) CreateLine(_ context.Context, l *entity.OrderLine) error {
	return r.x.do(func() error {
		if _, ok := r.x.s.orders[l.OrderID]; !ok {
			return domain.ErrNotFound
		}
		for _, existing := range r.x.s.lines {
			if existing.OrderID == l.OrderID {
				return domain.ErrDuplicate
			}
		}
		r.x.s.lines[l.ID] = cloneLine(l)
		r.x.onRollback(func() { delete(r.x.s.lines, l.ID) })
		return nil
	})
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.x.do(func() error {
		if v, ok := r.x.s.orders[id]; ok {
			out = cloneOrder(v)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) GetLineByOrder(_ context.Context, orderID string) (*entity.OrderLine, error) {
	var out *entity.OrderLine
	err := r.x.do(func() error {
		for _, l := range r.x.s.lines {
			if l.OrderID == orderID {
				out = cloneLine(l)
				break
			}
		}
		return nil
	})
	return out, err
}

// UpdateStatus cambia el estado del pedido y de su línea.
func (r *OrderRepository) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	return r.x.do(func() error {
		o, ok := r.x.s.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		prev := *o
		o.Status = status
		o.UpdatedAt = updatedAt
		r.x.onRollback(func() { *o = prev })
		for _, l := range r.x.s.lines {
			if l.OrderID != id {
				continue
			}
			line, prevLine := l, *l
			line.Status = status
			r.x.onRollback(func() { *line = prevLine })
		}
		return nil
	})
}

func (r *OrderRepository) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	var all []*entity.Order
	err := r.x.do(func() error {
		for _, o := range r.x.s.orders {
			all = append(all, cloneOrder(o))
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), err
}

// ReservationRepository implementación en memoria de reservas.
type ReservationRepository struct {
	x *session
}

func (r *ReservationRepository) Create(_ context.Context, res *entity.Reservation) error {
	if !res.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	return r.x.do(func() error {
		r.x.s.reservations = append(r.x.s.reservations, cloneReservation(res))
		n := len(r.x.s.reservations) - 1
		r.x.onRollback(func() { r.x.s.reservations = r.x.s.reservations[:n] })
		return nil
	})
}

func (r *ReservationRepository) ListByOrderLine(_ context.Context, orderLineID string) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	err := r.x.do(func() error {
		for _, res := range r.x.s.reservations {
			if res.OrderLineID == orderLineID {
				out = append(out, cloneReservation(res))
			}
		}
		return nil
	})
	return out, err
}

func (r *ReservationRepository) UpdateStatusByOrderLine(_ context.Context, orderLineID, status string) error {
	return r.x.do(func() error {
		for _, res := range r.x.s.reservations {
			if res.OrderLineID != orderLineID {
				continue
			}
			target, prev := res, res.Status
			target.Status = status
			r.x.onRollback(func() { target.Status = prev })
		}
		return nil
	})
}

// ReservedByItem suma las reservas registradas contra un item. Usado por tests de concurrencia.
func (r *ReservationRepository) ReservedByItem(itemID string) []*entity.Reservation {
	var out []*entity.Reservation
	_ = r.x.do(func() error {
		for _, res := range r.x.s.reservations {
			if res.InventoryItemID == itemID {
				out = append(out, cloneReservation(res))
			}
		}
		return nil
	})
	return out
}

// AlertRepository implementación en memoria de alertas.
type AlertRepository struct {
	x *session
}

func (r *AlertRepository) Create(_ context.Context, a *entity.Alert) error {
	return r.x.do(func() error {
		r.x.s.alerts = append(r.x.s.alerts, cloneAlert(a))
		n := len(r.x.s.alerts) - 1
		r.x.onRollback(func() { r.x.s.alerts = r.x.s.alerts[:n] })
		return nil
	})
}

func (r *AlertRepository) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	var out *entity.Alert
	err := r.x.do(func() error {
		for _, a := range r.x.s.alerts {
			if a.ID == id {
				out = cloneAlert(a)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *AlertRepository) ListByRecipient(_ context.Context, recipientID string, onlyPending bool, limit, offset int) ([]*entity.Alert, error) {
	var all []*entity.Alert
	err := r.x.do(func() error {
		for i := len(r.x.s.alerts) - 1; i >= 0; i-- {
			a := r.x.s.alerts[i]
			if recipientID != "" && a.RecipientID != recipientID {
				continue
			}
			if onlyPending && a.Notified {
				continue
			}
			all = append(all, cloneAlert(a))
		}
		return nil
	})
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), err
}

func (r *AlertRepository) MarkNotified(_ context.Context, id string) error {
	return r.x.do(func() error {
		for _, a := range r.x.s.alerts {
			if a.ID != id {
				continue
			}
			target, prev := a, a.Notified
			target.Notified = true
			r.x.onRollback(func() { target.Notified = prev })
			return nil
		}
		return domain.ErrNotFound
	})
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
