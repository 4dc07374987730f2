package ledger

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza atomicidad del compromiso de pedidos: o se reserva o se alerta, nunca a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		orderRepo repository.OrderRepository,
		reservationRepo repository.ReservationRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
