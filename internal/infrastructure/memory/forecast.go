package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

var (
	_ repository.ForecastRepository = (*ForecastRepository)(nil)
	_ repository.WeatherRepository  = (*WeatherRepository)(nil)
)

// ForecastRepository implementación en memoria del log append-only de proyecciones.
type ForecastRepository struct {
	x *session
}

func (r *ForecastRepository) Create(_ context.Context, f *entity.CapacityForecast) error {
	return r.x.do(func() error {
		r.x.s.forecasts = append(r.x.s.forecasts, cloneForecast(f))
		n := len(r.x.s.forecasts) - 1
		r.x.onRollback(func() { r.x.s.forecasts = r.x.s.forecasts[:n] })
		return nil
	})
}

func (r *ForecastRepository) ListSince(_ context.Context, speciesID string, horizonDays int, since time.Time) ([]*entity.CapacityForecast, error) {
	var out []*entity.CapacityForecast
	err := r.x.do(func() error {
		for _, f := range r.x.s.forecasts {
			if f.SpeciesID == speciesID && f.HorizonDays == horizonDays && !f.GeneratedAt.Before(since) {
				out = append(out, cloneForecast(f))
			}
		}
		return nil
	})
	return out, err
}

func (r *ForecastRepository) LatestCovering(_ context.Context, speciesID string, leadDays int) (*entity.CapacityForecast, error) {
	var out *entity.CapacityForecast
	err := r.x.do(func() error {
		var candidates []*entity.CapacityForecast
		for _, f := range r.x.s.forecasts {
			if f.SpeciesID == speciesID {
				candidates = append(candidates, f)
			}
		}
		if best := capacity.SelectCovering(candidates, leadDays); best != nil {
			out = cloneForecast(best)
		}
		return nil
	})
	return out, err
}

func (r *ForecastRepository) Latest(_ context.Context, speciesID string, horizonDays int) (*entity.CapacityForecast, error) {
	var out *entity.CapacityForecast
	err := r.x.do(func() error {
		for _, f := range r.x.s.forecasts {
			if f.SpeciesID != speciesID || f.HorizonDays != horizonDays {
				continue
			}
			if out == nil || f.GeneratedAt.After(out.GeneratedAt) {
				out = f
			}
		}
		if out != nil {
			out = cloneForecast(out)
		}
		return nil
	})
	return out, err
}

// WeatherRepository guarda una lectura climática por fecha.
type WeatherRepository struct {
	x *session
}

func (r *WeatherRepository) Upsert(_ context.Context, reading *entity.WeatherReading) error {
	key := reading.Date.Format("2006-01-02")
	return r.x.do(func() error {
		prev, existed := r.x.s.weather[key]
		c := *reading
		r.x.s.weather[key] = &c
		r.x.onRollback(func() {
			if existed {
				r.x.s.weather[key] = prev
				return
			}
			delete(r.x.s.weather, key)
		})
		return nil
	})
}

// Reading devuelve la lectura almacenada para la fecha (nil si no hay). Usado por tests.
func (r *WeatherRepository) Reading(date time.Time) *entity.WeatherReading {
	var out *entity.WeatherReading
	_ = r.x.do(func() error {
		if v, ok := r.x.s.weather[date.Format("2006-01-02")]; ok {
			c := *v
			out = &c
		}
		return nil
	})
	return out
}
