package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch registra la biomasa recolectada en una intake. FinalDryMass queda nil hasta terminar el secado.
type Batch struct {
	ID             string
	SpeciesID      string
	ZoneID         string
	InitialWetMass decimal.Decimal
	FinalDryMass   *decimal.Decimal
	RegisteredAt   time.Time
}
