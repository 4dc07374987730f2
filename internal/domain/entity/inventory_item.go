package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del inventario.
const (
	ItemStateLive   = "LIVE"   // húmedo, en cultivo
	ItemStateDrying = "DRYING" // en proceso de secado
	ItemStateDry    = "DRY"    // seco, utilizable para pedidos
)

// InventoryItem cantidad de material de un lote en un estado dado.
// Quantity está en kg húmedos para LIVE/DRYING y en kg secos para DRY; nunca es negativa.
type InventoryItem struct {
	ID        string
	BatchID   string
	SpeciesID string
	ZoneID    string
	Quantity  decimal.Decimal
	State     string
	UpdatedAt time.Time
}

// IsWet indica si Quantity debe convertirse con el factor de la especie.
func (i *InventoryItem) IsWet() bool {
	return i.State == ItemStateLive || i.State == ItemStateDrying
}
