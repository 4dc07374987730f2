package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusFeasible  = "FEASIBLE"
	OrderStatusAtRisk    = "AT_RISK"
	OrderStatusCompleted = "COMPLETED"
)

// Order pedido de un cliente registrado por un ejecutivo comercial.
type Order struct {
	ID           string
	UserID       string
	DeliveryDate time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderLine detalle del pedido (una línea por pedido).
// ForecastBacked es la parte del volumen cubierta por capacidad proyectada y no por stock reservado.
type OrderLine struct {
	ID             string
	OrderID        string
	SpeciesID      string
	DryVolume      decimal.Decimal
	Granularity    string
	Status         string
	ForecastBacked decimal.Decimal
}
