package capacity

import (
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Veredictos de factibilidad.
const (
	VerdictFeasible = "FEASIBLE"
	VerdictAtRisk   = "AT_RISK"
)

// Decision resultado de evaluar un pedido. Es de solo lectura; lo consume el ledger.
type Decision struct {
	SpeciesID        string
	Requested        decimal.Decimal
	DeliveryDate     time.Time
	LeadDays         int
	StockCapacity    decimal.Decimal // stock actual seco equivalente (LIVE convertido + DRY)
	ForecastCapacity decimal.Decimal // proyección aplicable (cero si ninguna cubre el plazo)
	Available        decimal.Decimal // StockCapacity + ForecastCapacity
	Verdict          string
	Shortfall        decimal.Decimal // Requested - Available si AT_RISK, cero si FEASIBLE
}

// Feasible indica si el veredicto es FEASIBLE.
func (d Decision) Feasible() bool { return d.Verdict == VerdictFeasible }

// Decide clasifica: available >= requested → FEASIBLE (el empate es factible); si no AT_RISK con el faltante.
func Decide(available, requested decimal.Decimal) (verdict string, shortfall decimal.Decimal) {
	if available.GreaterThanOrEqual(requested) {
		return VerdictFeasible, decimal.Zero
	}
	return VerdictAtRisk, requested.Sub(available)
}

// LeadDays días calendario entre today y delivery. delivery se interpreta como fecha de calendario.
// Falla con domain.ErrPastDeliveryDate si delivery es anterior a today.
func LeadDays(today, delivery time.Time) (int, error) {
	y, m, d := today.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = delivery.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0, domain.ErrPastDeliveryDate
	}
	return days, nil
}
