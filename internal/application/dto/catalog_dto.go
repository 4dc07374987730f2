package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSpeciesRequest body para POST /api/species.
type CreateSpeciesRequest struct {
	Name             string          `json:"name" validate:"required,max=45"`
	ConversionFactor decimal.Decimal `json:"conversion_factor" validate:"gt=0"`
}

// SpeciesResponse salida de una especie.
type SpeciesResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CreateZoneRequest body para POST /api/zones.
type CreateZoneRequest struct {
	Name     string `json:"name" validate:"required,max=45"`
	Location string `json:"location" validate:"omitempty,max=45"`
}

// ZoneResponse salida de una zona de cultivo.
type ZoneResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
