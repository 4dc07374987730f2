package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterBiomassRequest body para POST /api/biomass (registro de biomasa húmeda).
type RegisterBiomassRequest struct {
	SpeciesID string          `json:"species_id" validate:"required"`
	ZoneID    string          `json:"zone_id" validate:"required"`
	WetMass   decimal.Decimal `json:"wet_mass" validate:"gt=0"`
}

// FinishDryingRequest body para POST /api/inventory/:id/dry.
type FinishDryingRequest struct {
	DryMass decimal.Decimal `json:"dry_mass" validate:"gt=0"`
}

// InventoryItemResponse salida de un item de inventario.
type InventoryItemResponse struct {
	ID        string          `json:"id"`
	BatchID   string          `json:"batch_id"`
	SpeciesID string          `json:"species_id"`
	ZoneID    string          `json:"zone_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	State     string          `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CapacityResponse desglose de la capacidad disponible de una especie para un plazo.
type CapacityResponse struct {
	SpeciesID           string          `json:"species_id"`
	LeadDays            int             `json:"lead_days"`
	StockCapacity       decimal.Decimal `json:"stock_capacity"`    // kg secos equivalentes (LIVE convertido + DRY)
	ForecastCapacity    decimal.Decimal `json:"forecast_capacity"` // proyección aplicada (0 si ninguna cubre)
	ForecastHorizonDays int             `json:"forecast_horizon_days,omitempty"`
	Total               decimal.Decimal `json:"total"`
}
