package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, s *memory.Store, id, state string, qty string, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, s.Items().Create(context.Background(), &entity.InventoryItem{
		ID:        id,
		BatchID:   "b1",
		SpeciesID: "sp1",
		ZoneID:    "z1",
		Quantity:  decimal.RequireFromString(qty),
		State:     state,
		UpdatedAt: updatedAt,
	}))
}

func TestTxRunner_RollbackDeshaceEscrituras(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	seedItem(t, s, "i1", entity.ItemStateLive, "120", now)
	runner := memory.NewTxRunner(s)
	boom := errors.New("falla")

	err := runner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		orderRepo repository.OrderRepository,
		reservationRepo repository.ReservationRepository,
		alertRepo repository.AlertRepository,
	) error {
		require.NoError(t, itemRepo.UpdateQuantity(ctx, "i1", decimal.NewFromInt(30), now.Add(time.Hour)))
		require.NoError(t, orderRepo.Create(ctx, &entity.Order{ID: "o1", Status: entity.OrderStatusFeasible}))
		require.NoError(t, orderRepo.CreateLine(ctx, &entity.OrderLine{ID: "l1", OrderID: "o1", SpeciesID: "sp1"}))
		require.NoError(t, reservationRepo.Create(ctx, &entity.Reservation{ID: "r1", OrderLineID: "l1", InventoryItemID: "i1", Quantity: decimal.NewFromInt(15)}))
		require.NoError(t, alertRepo.Create(ctx, &entity.Alert{ID: "a1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := s.Items().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(120)), "cantidad restaurada")
	assert.True(t, item.UpdatedAt.Equal(now))

	order, _ := s.Orders().GetByID(ctx, "o1")
	assert.Nil(t, order)
	assert.Empty(t, s.Reservations().ReservedByItem("i1"))
	alerts, _ := s.Alerts().ListByRecipient(ctx, "", false, 10, 0)
	assert.Empty(t, alerts)
}

func TestTxRunner_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	runner := memory.NewTxRunner(s)

	err := runner.RunIntake(ctx, func(batchRepo repository.BatchRepository, itemRepo repository.InventoryItemRepository) error {
		if err := batchRepo.Create(ctx, &entity.Batch{ID: "b1", SpeciesID: "sp1", ZoneID: "z1", InitialWetMass: decimal.NewFromInt(60)}); err != nil {
			return err
		}
		return itemRepo.Create(ctx, &entity.InventoryItem{ID: "i1", BatchID: "b1", SpeciesID: "sp1", Quantity: decimal.NewFromInt(60), State: entity.ItemStateLive})
	})
	require.NoError(t, err)

	batch, _ := s.Batches().GetByID(ctx, "b1")
	require.NotNil(t, batch)
	sum, err := s.Items().SumBySpeciesAndState(ctx, "sp1", entity.ItemStateLive)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(60)))
}

func TestListForUpdateBySpecies_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	seedItem(t, s, "viejo", entity.ItemStateDry, "5", base)
	seedItem(t, s, "nuevo", entity.ItemStateLive, "60", base.Add(2*time.Hour))
	seedItem(t, s, "empate", entity.ItemStateDry, "3", base) // mismo UpdatedAt que "viejo", creado después
	seedItem(t, s, "secando", entity.ItemStateDrying, "40", base.Add(3*time.Hour))

	items, err := s.Items().ListForUpdateBySpecies(ctx, "sp1", entity.ItemStateLive, entity.ItemStateDry)
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"nuevo", "empate", "viejo"}, ids)
}

func TestInventoryItem_CantidadNegativaRechazada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedItem(t, s, "i1", entity.ItemStateDry, "5", time.Now())

	err := s.Items().UpdateQuantity(ctx, "i1", decimal.NewFromInt(-1), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.Items().UpdateQuantity(ctx, "no-existe", decimal.Zero, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpeciesDelete_ProtegidaSiEstaReferenciada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp1", Name: "Gracilaria", ConversionFactor: decimal.NewFromInt(6)}))
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp2", Name: "Luga", ConversionFactor: decimal.NewFromInt(5)}))
	seedItem(t, s, "i1", entity.ItemStateLive, "10", time.Now())

	assert.ErrorIs(t, s.Species().Delete(ctx, "sp1"), domain.ErrConflict)
	assert.NoError(t, s.Species().Delete(ctx, "sp2"))
	assert.ErrorIs(t, s.Species().Delete(ctx, "sp2"), domain.ErrNotFound)

	sp, err := s.Species().GetByID(ctx, "sp2")
	require.NoError(t, err)
	assert.Nil(t, sp)
}

func TestForecastRepository_LatestCovering(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	for _, f := range []*entity.CapacityForecast{
		{ID: "f7a", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: decimal.NewFromInt(10), GeneratedAt: base},
		{ID: "f7b", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: decimal.NewFromInt(12), GeneratedAt: base.Add(time.Hour)},
		{ID: "f14", SpeciesID: "sp1", HorizonDays: 14, EstimatedCapacity: decimal.NewFromInt(19), GeneratedAt: base.Add(time.Hour)},
		{ID: "otra", SpeciesID: "sp2", HorizonDays: 7, EstimatedCapacity: decimal.NewFromInt(99), GeneratedAt: base.Add(2 * time.Hour)},
	} {
		require.NoError(t, s.Forecasts().Create(ctx, f))
	}

	got, err := s.Forecasts().LatestCovering(ctx, "sp1", 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "f7b", got.ID)

	got, _ = s.Forecasts().LatestCovering(ctx, "sp1", 10)
	require.NotNil(t, got)
	assert.Equal(t, "f14", got.ID)

	got, _ = s.Forecasts().LatestCovering(ctx, "sp1", 15)
	assert.Nil(t, got)

	hist, err := s.Forecasts().ListSince(ctx, "sp1", 7, base.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}
