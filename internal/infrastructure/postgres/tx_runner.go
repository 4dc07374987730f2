package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Proyeccion-api/internal/application/intake"
	"github.com/jhoicas/Proyeccion-api/internal/application/ledger"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and intake.TxRunner.
var (
	_ ledger.TxRunner = (*TxRunner)(nil)
	_ intake.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con los repos del compromiso de pedidos y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(
			NewInventoryItemRepository(tx),
			NewOrderRepository(tx),
			NewReservationRepository(tx),
			NewAlertRepository(tx),
		)
	})
}

// RunIntake inicia una transacción con los repos de lotes e inventario (registro de biomasa y secado).
func (r *TxRunner) RunIntake(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	itemRepo repository.InventoryItemRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewBatchRepository(tx), NewInventoryItemRepository(tx))
	})
}
