package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/feasibility"
	"github.com/jhoicas/Proyeccion-api/internal/application/ledger"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store     *memory.Store
	evaluator *feasibility.Evaluator
	ledger    *ledger.ReservationLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Species().Create(context.Background(), &entity.Species{ID: "sp1", Name: "Gracilaria", ConversionFactor: d("6")}))
	agg := feasibility.NewCapacityAggregator(s.Species(), s.Items(), s.Forecasts())
	return &fixture{
		store:     s,
		evaluator: feasibility.NewEvaluator(agg, time.UTC).WithClock(func() time.Time { return now }),
		ledger:    ledger.NewReservationLedger(memory.NewTxRunner(s), s.Species(), "operaciones", nil).WithClock(func() time.Time { return now }),
	}
}

func (f *fixture) addItem(t *testing.T, id, state, qty string, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, f.store.Items().Create(context.Background(), &entity.InventoryItem{
		ID: id, BatchID: "b-" + id, SpeciesID: "sp1", ZoneID: "z1",
		Quantity: d(qty), State: state, UpdatedAt: updatedAt,
	}))
}

func (f *fixture) evaluate(t *testing.T, requested string) capacity.Decision {
	t.Helper()
	dec, err := f.evaluator.Evaluate(context.Background(), "sp1", d(requested), now)
	require.NoError(t, err)
	return dec
}

// Pedido de 15 kg secos con 120 kg húmedos (factor 6): reserva 15 kg y quedan 5 kg secos equivalentes.
func TestCommit_FactibleReservaYDescuenta(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "i1", entity.ItemStateLive, "120", now.Add(-time.Hour))

	dec := f.evaluate(t, "15")
	require.Equal(t, capacity.VerdictFeasible, dec.Verdict)

	c, err := f.ledger.Commit(ctx, "u1", "polvo", dec)
	require.NoError(t, err)
	assert.Nil(t, c.Alert)
	assert.Equal(t, entity.OrderStatusFeasible, c.Order.Status)
	require.Len(t, c.Reservations, 1)
	assert.Equal(t, "i1", c.Reservations[0].InventoryItemID)
	assert.True(t, c.Reservations[0].Quantity.Equal(d("15")))
	assert.True(t, c.Line.ForecastBacked.IsZero())

	item, _ := f.store.Items().GetByID(ctx, "i1")
	assert.True(t, item.Quantity.Equal(d("30")), "quedan 30 kg húmedos, got %s", item.Quantity)

	after, err := f.evaluator.Capacity(ctx, "sp1", 0)
	require.NoError(t, err)
	assert.True(t, after.Total.Equal(d("5")), "got %s", after.Total)

	order, _ := f.store.Orders().GetByID(ctx, c.Order.ID)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusFeasible, order.Status)
	line, _ := f.store.Orders().GetLineByOrder(ctx, c.Order.ID)
	require.NotNil(t, line)
	assert.Equal(t, "polvo", line.Granularity)
}

// Pedido de 25 kg con 20 disponibles: AT_RISK, faltan 5 kg, alerta CRITICAL y ninguna reserva.
func TestCommit_EnRiesgoAlertaSinReserva(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "i1", entity.ItemStateLive, "120", now)

	dec := f.evaluate(t, "25")
	require.Equal(t, capacity.VerdictAtRisk, dec.Verdict)
	require.True(t, dec.Shortfall.Equal(d("5")))

	c, err := f.ledger.Commit(ctx, "u1", "", dec)
	require.NoError(t, err)
	assert.Empty(t, c.Reservations)
	require.NotNil(t, c.Alert)
	assert.Equal(t, entity.AlertLevelCritical, c.Alert.Level)
	assert.Equal(t, entity.AlertTypeDeliveryRisk, c.Alert.Type)
	assert.Equal(t, "operaciones", c.Alert.RecipientID)
	assert.Contains(t, c.Alert.Message, "5.00 kg")
	assert.Contains(t, c.Alert.Message, "2026-10-17")

	order, _ := f.store.Orders().GetByID(ctx, c.Order.ID)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusAtRisk, order.Status)
	assert.Empty(t, f.store.Reservations().ReservedByItem("i1"))
	item, _ := f.store.Items().GetByID(ctx, "i1")
	assert.True(t, item.Quantity.Equal(d("120")), "el stock no cambia")
}

func TestCommit_CarreraFallaCerrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "i1", entity.ItemStateDry, "10", now)

	dec := f.evaluate(t, "8")
	require.Equal(t, capacity.VerdictFeasible, dec.Verdict)

	// Otro proceso consume el stock entre la evaluación y el compromiso.
	require.NoError(t, f.store.Items().UpdateQuantity(ctx, "i1", d("3"), now))

	_, err := f.ledger.Commit(ctx, "u1", "", dec)
	require.ErrorIs(t, err, domain.ErrReservationRace)

	orders, _ := f.store.Orders().List(ctx, 10, 0)
	assert.Empty(t, orders, "no se registra el pedido")
	assert.Empty(t, f.store.Reservations().ReservedByItem("i1"))
	item, _ := f.store.Items().GetByID(ctx, "i1")
	assert.True(t, item.Quantity.Equal(d("3")))
}

func TestCommit_SinInventarioAlComprometer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "i1", entity.ItemStateDry, "10", now)
	dec := f.evaluate(t, "10")

	require.NoError(t, f.store.Items().UpdateQuantity(ctx, "i1", decimal.Zero, now))

	_, err := f.ledger.Commit(ctx, "u1", "", dec)
	assert.ErrorIs(t, err, domain.ErrReservationRace)
}

func TestCommit_SoloProyeccionSinItemsFallaCerrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Forecasts().Create(ctx, &entity.CapacityForecast{
		ID: "f7", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: d("10"), GeneratedAt: now,
	}))

	dec := f.evaluate(t, "5")
	require.Equal(t, capacity.VerdictFeasible, dec.Verdict)
	require.True(t, dec.Available.Equal(d("10")))

	c, err := f.ledger.Commit(ctx, "u1", "", dec)
	require.ErrorIs(t, err, domain.ErrReservationRace)
	assert.Nil(t, c)

	orders, _ := f.store.Orders().List(ctx, 10, 0)
	assert.Empty(t, orders, "no se registra el pedido")
	alerts, _ := f.store.Alerts().ListByRecipient(ctx, "", false, 10, 0)
	assert.Empty(t, alerts)
}

func TestCommit_VariosItemsMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "viejo", entity.ItemStateDry, "10", now.Add(-48*time.Hour))
	f.addItem(t, "reciente", entity.ItemStateLive, "36", now.Add(-time.Hour)) // 6 kg secos

	dec := f.evaluate(t, "9")
	c, err := f.ledger.Commit(ctx, "u1", "", dec)
	require.NoError(t, err)
	require.Len(t, c.Reservations, 2)

	assert.Equal(t, "reciente", c.Reservations[0].InventoryItemID)
	assert.True(t, c.Reservations[0].Quantity.Equal(d("6")))
	assert.Equal(t, "viejo", c.Reservations[1].InventoryItemID)
	assert.True(t, c.Reservations[1].Quantity.Equal(d("3")))

	reciente, _ := f.store.Items().GetByID(ctx, "reciente")
	assert.True(t, reciente.Quantity.IsZero())
	viejo, _ := f.store.Items().GetByID(ctx, "viejo")
	assert.True(t, viejo.Quantity.Equal(d("7")))
}

func TestCommit_ParteRespaldadaPorProyeccion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "i1", entity.ItemStateDry, "4", now)
	require.NoError(t, f.store.Forecasts().Create(ctx, &entity.CapacityForecast{
		ID: "f7", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: d("10"), GeneratedAt: now,
	}))

	dec, err := f.evaluator.Evaluate(ctx, "sp1", d("12"), now.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Equal(t, capacity.VerdictFeasible, dec.Verdict)

	c, err := f.ledger.Commit(ctx, "u1", "", dec)
	require.NoError(t, err)
	require.Len(t, c.Reservations, 1)
	assert.True(t, c.Reservations[0].Quantity.Equal(d("4")))
	assert.True(t, c.Line.ForecastBacked.Equal(d("8")), "got %s", c.Line.ForecastBacked)
}

func TestCommit_DecisionInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Commit(context.Background(), "u1", "", capacity.Decision{SpeciesID: "sp1", Requested: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
