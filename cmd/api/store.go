package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proyeccion-api/internal/application/intake"
	"github.com/jhoicas/Proyeccion-api/internal/application/ledger"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proyeccion-api/pkg/config"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
)

type txRunner interface {
	ledger.TxRunner
	intake.TxRunner
}

// store repositorios y runner transaccional del driver elegido (STORE_DRIVER).
type store struct {
	species      repository.SpeciesRepository
	zones        repository.ZoneRepository
	items        repository.InventoryItemRepository
	forecasts    repository.ForecastRepository
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	alerts       repository.AlertRepository
	weather      repository.WeatherRepository
	users        repository.UserRepository
	runner       txRunner
	close        func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	switch cfg.App.StoreDriver {
	case "memory":
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &store{
			species:      s.Species(),
			zones:        s.Zones(),
			items:        s.Items(),
			forecasts:    s.Forecasts(),
			orders:       s.Orders(),
			reservations: s.Reservations(),
			alerts:       s.Alerts(),
			weather:      s.Weather(),
			users:        s.Users(),
			runner:       memory.NewTxRunner(s),
			close:        func() {},
		}, nil
	case "postgres", "":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		return &store{
			species:      postgres.NewSpeciesRepository(pool),
			zones:        postgres.NewZoneRepository(pool),
			items:        postgres.NewInventoryItemRepository(pool),
			forecasts:    postgres.NewForecastRepository(pool),
			orders:       postgres.NewOrderRepository(pool),
			reservations: postgres.NewReservationRepository(pool),
			alerts:       postgres.NewAlertRepository(pool),
			weather:      postgres.NewWeatherRepository(pool),
			users:        postgres.NewUserRepository(pool),
			runner:       postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido %q (postgres|memory)", cfg.App.StoreDriver)
	}
}
