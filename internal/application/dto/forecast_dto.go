package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de la proyección a 7 días.
const (
	ForecastSourceHistory   = "HISTORIAL"
	ForecastSourceLiveStock = "INVENTARIO_VIVO"
)

// ForecastResult resultado de la proyección de una especie en una corrida.
type ForecastResult struct {
	SpeciesID   string          `json:"species_id"`
	SpeciesName string          `json:"species_name"`
	Capacity7   decimal.Decimal `json:"capacity_7_days"`
	Capacity14  decimal.Decimal `json:"capacity_14_days"`
	Source      string          `json:"source"`
	Message     string          `json:"message"`
	Error       string          `json:"error,omitempty"`
}

// ForecastRunResponse salida de POST /api/forecasts/run.
type ForecastRunResponse struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Weather     *WeatherResponse `json:"weather,omitempty"`
	Results     []ForecastResult `json:"results"`
	AlertID     string           `json:"alert_id,omitempty"`
}

// WeatherResponse lectura climática usada para anotar la corrida.
type WeatherResponse struct {
	Humidity  decimal.Decimal `json:"humidity"`
	Condition string          `json:"condition"`
	Severity  string          `json:"severity,omitempty"`
}

// ForecastReportRow fila del reporte PDF: última proyección vigente por especie.
type ForecastReportRow struct {
	SpeciesName      string
	ConversionFactor decimal.Decimal
	Capacity7        *decimal.Decimal
	Capacity14       *decimal.Decimal
	GeneratedAt      *time.Time
}
