package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva.
const (
	ReservationStatusReserved = "RESERVED"
	ReservationStatusConsumed = "CONSUMED"
)

// Reservation compromete una cantidad seca de un InventoryItem para una línea de pedido (trazabilidad).
type Reservation struct {
	ID              string
	OrderLineID     string
	InventoryItemID string
	Quantity        decimal.Decimal // kg secos
	Status          string
	ReservedAt      time.Time
}
