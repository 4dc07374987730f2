package inventory_test

import (
	"testing"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryCapacity_SeisAUno(t *testing.T) {
	dry, err := inventory.DryCapacity(decimal.NewFromInt(120), decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	assert.True(t, dry.Equal(decimal.NewFromInt(20)), "120 kg húmedos / 6 = 20 kg secos, got %s", dry)
}

// Ida y vuelta: DryCapacity(w, f) * f == w dentro de la tolerancia de redondeo.
func TestDryCapacity_IdaYVuelta(t *testing.T) {
	tolerance := decimal.RequireFromString("0.000000001")
	cases := []struct{ wet, factor string }{
		{"120", "6.00"},
		{"100", "6.00"},
		{"0", "3.50"},
		{"987.65", "7.25"},
		{"1", "3"},
		{"0.01", "0.01"},
		{"55555.55", "999.99"},
	}
	for _, c := range cases {
		wet := decimal.RequireFromString(c.wet)
		factor := decimal.RequireFromString(c.factor)
		dry, err := inventory.DryCapacity(wet, factor)
		require.NoError(t, err)
		back := dry.Mul(factor)
		assert.True(t, back.Sub(wet).Abs().LessThanOrEqual(tolerance),
			"wet=%s factor=%s -> dry=%s -> %s", c.wet, c.factor, dry, back)
	}
}

func TestDryCapacity_FactorInvalido(t *testing.T) {
	for _, f := range []string{"0", "-1", "-0.01", "0.00"} {
		_, err := inventory.DryCapacity(decimal.NewFromInt(120), decimal.RequireFromString(f))
		assert.ErrorIs(t, err, domain.ErrInvalidFactor, "factor %s debe ser rechazado", f)
	}
}

func TestWetEquivalent(t *testing.T) {
	wet, err := inventory.WetEquivalent(decimal.NewFromInt(15), decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	assert.True(t, wet.Equal(decimal.NewFromInt(90)))

	_, err = inventory.WetEquivalent(decimal.NewFromInt(15), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)
}
