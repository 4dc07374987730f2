package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

var (
	_ repository.ForecastRepository = (*ForecastRepo)(nil)
	_ repository.WeatherRepository  = (*WeatherRepo)(nil)
)

// ForecastRepo log append-only de proyecciones sobre PostgreSQL.
type ForecastRepo struct {
	q Querier
}

// NewForecastRepository construye el adaptador de proyecciones.
func NewForecastRepository(q Querier) *ForecastRepo {
	return &ForecastRepo{q: q}
}

const forecastColumns = `id, species_id, horizon_days, estimated_capacity, generated_at`

func scanForecast(row pgx.Row) (*entity.CapacityForecast, error) {
	var f entity.CapacityForecast
	if err := row.Scan(&f.ID, &f.SpeciesID, &f.HorizonDays, &f.EstimatedCapacity, &f.GeneratedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create agrega una proyección al log.
func (r *ForecastRepo) Create(ctx context.Context, f *entity.CapacityForecast) error {
	query := `INSERT INTO capacity_forecasts (` + forecastColumns + `) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, f.ID, f.SpeciesID, f.HorizonDays, f.EstimatedCapacity, f.GeneratedAt); err != nil {
		return insertError("insert forecast", err)
	}
	return nil
}

// ListSince proyecciones de la especie y horizonte generadas desde since.
func (r *ForecastRepo) ListSince(ctx context.Context, speciesID string, horizonDays int, since time.Time) ([]*entity.CapacityForecast, error) {
	query := `
		SELECT ` + forecastColumns + `
		FROM capacity_forecasts
		WHERE species_id = $1 AND horizon_days = $2 AND generated_at >= $3
		ORDER BY generated_at`
	rows, err := r.q.Query(ctx, query, speciesID, horizonDays, since)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()
	var out []*entity.CapacityForecast
	for rows.Next() {
		f, err := scanForecast(rows)
		if err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// LatestCovering la más reciente del menor horizonte >= leadDays (nil si ninguna).
func (r *ForecastRepo) LatestCovering(ctx context.Context, speciesID string, leadDays int) (*entity.CapacityForecast, error) {
	query := `
		SELECT ` + forecastColumns + `
		FROM capacity_forecasts
		WHERE species_id = $1 AND horizon_days >= $2
		ORDER BY horizon_days ASC, generated_at DESC
		LIMIT 1`
	return r.one(ctx, query, speciesID, leadDays)
}

// Latest la más reciente de la especie para el horizonte (nil si ninguna).
func (r *ForecastRepo) Latest(ctx context.Context, speciesID string, horizonDays int) (*entity.CapacityForecast, error) {
	query := `
		SELECT ` + forecastColumns + `
		FROM capacity_forecasts
		WHERE species_id = $1 AND horizon_days = $2
		ORDER BY generated_at DESC
		LIMIT 1`
	return r.one(ctx, query, speciesID, horizonDays)
}

func (r *ForecastRepo) one(ctx context.Context, query string, args ...any) (*entity.CapacityForecast, error) {
	f, err := scanForecast(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get forecast: %w", err)
	}
	return f, nil
}

// WeatherRepo lectura climática diaria sobre PostgreSQL.
type WeatherRepo struct {
	q Querier
}

// NewWeatherRepository construye el adaptador climático.
func NewWeatherRepository(q Querier) *WeatherRepo {
	return &WeatherRepo{q: q}
}

// Upsert inserta o reemplaza la lectura de la fecha.
func (r *WeatherRepo) Upsert(ctx context.Context, w *entity.WeatherReading) error {
	query := `
		INSERT INTO weather_readings (date, humidity, solar_radiation, condition)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date)
		DO UPDATE SET humidity = EXCLUDED.humidity, solar_radiation = EXCLUDED.solar_radiation, condition = EXCLUDED.condition`
	if _, err := r.q.Exec(ctx, query, w.Date, w.Humidity, w.SolarRadiation, w.Condition); err != nil {
		return fmt.Errorf("upsert weather: %w", err)
	}
	return nil
}
