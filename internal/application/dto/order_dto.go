package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SpeciesID    string          `json:"species_id" validate:"required"`
	DryVolume    decimal.Decimal `json:"dry_volume" validate:"gt=0"`
	DeliveryDate string          `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	Granularity  string          `json:"granularity" validate:"omitempty,max=45"`
}

// ReservationResponse salida de una reserva de inventario.
type ReservationResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Status          string          `json:"status"`
	ReservedAt      time.Time       `json:"reserved_at"`
}

// OrderResponse salida de un pedido con su línea y reservas.
type OrderResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	DeliveryDate   string                `json:"delivery_date"`
	Status         string                `json:"status"`
	SpeciesID      string                `json:"species_id"`
	DryVolume      decimal.Decimal       `json:"dry_volume"`
	Granularity    string                `json:"granularity"`
	ForecastBacked decimal.Decimal       `json:"forecast_backed"`
	Reservations   []ReservationResponse `json:"reservations"`
	CreatedAt      time.Time             `json:"created_at"`
}

// OrderResultResponse resultado de registrar un pedido: decisión de factibilidad y lo comprometido.
type OrderResultResponse struct {
	Order     OrderResponse   `json:"order"`
	Verdict   string          `json:"verdict"`
	Available decimal.Decimal `json:"available"`
	Shortfall decimal.Decimal `json:"shortfall"`
	Message   string          `json:"message"`
	AlertID   string          `json:"alert_id,omitempty"`
}
