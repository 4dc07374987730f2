package inventory

import (
	"fmt"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/shopspring/decimal"
)

// DryCapacity convierte masa húmeda en capacidad seca equivalente (servicio de dominio).
// Seco = Húmedo / Factor. Falla con domain.ErrInvalidFactor si factor <= 0.
func DryCapacity(wetMass, factor decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateFactor(factor); err != nil {
		return decimal.Zero, err
	}
	return wetMass.Div(factor), nil
}

// WetEquivalent es la operación inversa: kg húmedos necesarios para obtener dryMass.
func WetEquivalent(dryMass, factor decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateFactor(factor); err != nil {
		return decimal.Zero, err
	}
	return dryMass.Mul(factor), nil
}

// ValidateFactor exige factor > 0.
func ValidateFactor(factor decimal.Decimal) error {
	if !factor.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidFactor, factor.String())
	}
	return nil
}
