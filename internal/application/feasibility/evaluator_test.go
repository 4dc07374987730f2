package feasibility_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/feasibility"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newEvaluator(t *testing.T, factor string) (*feasibility.Evaluator, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp1", Name: "Gracilaria", ConversionFactor: d(factor)}))
	agg := feasibility.NewCapacityAggregator(s.Species(), s.Items(), s.Forecasts())
	ev := feasibility.NewEvaluator(agg, time.UTC).WithClock(func() time.Time { return today })
	return ev, s
}

func addItem(t *testing.T, s *memory.Store, id, state, qty string) {
	t.Helper()
	require.NoError(t, s.Items().Create(context.Background(), &entity.InventoryItem{
		ID: id, BatchID: "b-" + id, SpeciesID: "sp1", ZoneID: "z1",
		Quantity: d(qty), State: state, UpdatedAt: today,
	}))
}

// Factor 6, 120 kg húmedos vivos, sin proyección: 20 kg secos para entrega hoy.
func TestAvailableCapacity_StockVivoConvertido(t *testing.T) {
	ev, s := newEvaluator(t, "6.00")
	addItem(t, s, "i1", entity.ItemStateLive, "120")

	c, err := ev.Capacity(context.Background(), "sp1", 0)
	require.NoError(t, err)
	assert.True(t, c.Total.Equal(d("20")), "got %s", c.Total)
	assert.True(t, c.ForecastCapacity.IsZero())
	assert.Equal(t, 0, c.ForecastHorizonDays)
}

func TestAvailableCapacity_SumaSecoYExcluyeSecado(t *testing.T) {
	ev, s := newEvaluator(t, "6")
	addItem(t, s, "vivo", entity.ItemStateLive, "60")
	addItem(t, s, "seco", entity.ItemStateDry, "4.5")
	addItem(t, s, "secando", entity.ItemStateDrying, "600")

	c, err := ev.Capacity(context.Background(), "sp1", 0)
	require.NoError(t, err)
	assert.True(t, c.StockCapacity.Equal(d("14.5")), "got %s", c.StockCapacity)
}

func TestAvailableCapacity_SeleccionDeHorizonte(t *testing.T) {
	ctx := context.Background()
	ev, s := newEvaluator(t, "6")
	addItem(t, s, "i1", entity.ItemStateLive, "120")
	require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{ID: "f7", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: d("10"), GeneratedAt: today}))
	require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{ID: "f14", SpeciesID: "sp1", HorizonDays: 14, EstimatedCapacity: d("16"), GeneratedAt: today}))

	cases := []struct {
		lead    int
		total   string
		horizon int
	}{
		{0, "30", 7},
		{7, "30", 7},
		{8, "36", 14},
		{14, "36", 14},
		{15, "20", 0},
	}
	for _, c := range cases {
		got, err := ev.Capacity(ctx, "sp1", c.lead)
		require.NoError(t, err)
		assert.True(t, got.Total.Equal(d(c.total)), "lead %d: got %s", c.lead, got.Total)
		assert.Equal(t, c.horizon, got.ForecastHorizonDays, "lead %d", c.lead)
	}
}

func TestEvaluate_Veredictos(t *testing.T) {
	ctx := context.Background()
	ev, s := newEvaluator(t, "6")
	addItem(t, s, "i1", entity.ItemStateLive, "120")

	dec, err := ev.Evaluate(ctx, "sp1", d("15"), today)
	require.NoError(t, err)
	assert.Equal(t, capacity.VerdictFeasible, dec.Verdict)
	assert.True(t, dec.Shortfall.IsZero())

	dec, err = ev.Evaluate(ctx, "sp1", d("20"), today)
	require.NoError(t, err)
	assert.Equal(t, capacity.VerdictFeasible, dec.Verdict, "el empate es factible")

	dec, err = ev.Evaluate(ctx, "sp1", d("25"), today)
	require.NoError(t, err)
	assert.Equal(t, capacity.VerdictAtRisk, dec.Verdict)
	assert.True(t, dec.Shortfall.Equal(d("5")), "got %s", dec.Shortfall)
	assert.True(t, dec.Available.LessThan(dec.Requested))
}

func TestEvaluate_Idempotente(t *testing.T) {
	ctx := context.Background()
	ev, s := newEvaluator(t, "6")
	addItem(t, s, "i1", entity.ItemStateLive, "120")
	delivery := today.AddDate(0, 0, 3)

	first, err := ev.Evaluate(ctx, "sp1", d("18"), delivery)
	require.NoError(t, err)
	second, err := ev.Evaluate(ctx, "sp1", d("18"), delivery)
	require.NoError(t, err)

	assert.Equal(t, first.Verdict, second.Verdict)
	assert.True(t, first.Available.Equal(second.Available))
	assert.Equal(t, 3, first.LeadDays)
}

func TestEvaluate_Errores(t *testing.T) {
	ctx := context.Background()
	ev, s := newEvaluator(t, "6")
	addItem(t, s, "i1", entity.ItemStateLive, "120")

	_, err := ev.Evaluate(ctx, "sp1", d("1"), today.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrPastDeliveryDate)

	_, err = ev.Evaluate(ctx, "sp1", d("0"), today)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ev.Evaluate(ctx, "no-existe", d("1"), today)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad, s2 := newEvaluator(t, "0")
	addItem(t, s2, "i1", entity.ItemStateLive, "120")
	_, err = bad.Evaluate(ctx, "sp1", d("1"), today)
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)
}
