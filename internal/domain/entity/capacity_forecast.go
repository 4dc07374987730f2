package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Horizontes de proyección soportados (días).
const (
	Horizon7Days  = 7
	Horizon14Days = 14
)

// CapacityForecast capacidad seca estimada para una especie a 7 o 14 días. Registro append-only.
type CapacityForecast struct {
	ID                string
	SpeciesID         string
	HorizonDays       int
	EstimatedCapacity decimal.Decimal
	GeneratedAt       time.Time
}
