package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Species representa una especie de alga (ej. Gracilaria, Macrocystis).
// ConversionFactor es la relación húmedo:seco (6.00 = 6 kg húmedos por 1 kg seco).
type Species struct {
	ID               string
	Name             string
	ConversionFactor decimal.Decimal
	CreatedAt        time.Time
}
