package memory

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

// TxRunner ejecuta unidades de trabajo atómicas sobre el Store: toma el lock durante toda la
// función y, si esta devuelve error o entra en pánico, deshace cada escritura en orden inverso.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) within(ctx context.Context, fn func(x *session) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	x := &session{s: r.s, inTx: true}
	defer func() {
		if p := recover(); p != nil {
			x.rollback()
			panic(p)
		}
		if err != nil {
			x.rollback()
		}
	}()
	return fn(x)
}

// Run ejecuta fn con los repositorios del compromiso de pedidos (inventario, pedidos, reservas, alertas).
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return r.within(ctx, func(x *session) error {
		return fn(
			&InventoryItemRepository{x: x},
			&OrderRepository{x: x},
			&ReservationRepository{x: x},
			&AlertRepository{x: x},
		)
	})
}

// RunIntake ejecuta fn con los repositorios del registro de biomasa (lotes e inventario).
func (r *TxRunner) RunIntake(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	itemRepo repository.InventoryItemRepository,
) error) error {
	return r.within(ctx, func(x *session) error {
		return fn(&BatchRepository{x: x}, &InventoryItemRepository{x: x})
	})
}
