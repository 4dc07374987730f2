package forecast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/forecast"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type stubWeather struct {
	reading *entity.WeatherReading
	err     error
	block   bool
}

func (w *stubWeather) CurrentConditions(ctx context.Context) (*entity.WeatherReading, error) {
	if w.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return w.reading, w.err
}

func newRun(t *testing.T, provider *stubWeather) (*forecast.GenerateUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp1", Name: "Gracilaria", ConversionFactor: d("6")}))
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{
		ID: "i1", BatchID: "b1", SpeciesID: "sp1", ZoneID: "z1", Quantity: d("120"), State: entity.ItemStateLive, UpdatedAt: now,
	}))

	var weather *forecast.WeatherModifier
	if provider != nil {
		weather = forecast.NewWeatherModifier(provider, 50*time.Millisecond, nil, nil)
	}
	uc := forecast.NewGenerateUseCase(forecast.GenerateDeps{
		SpeciesRepo:  s.Species(),
		ItemRepo:     s.Items(),
		ForecastRepo: s.Forecasts(),
		AlertRepo:    s.Alerts(),
		WeatherRepo:  s.Weather(),
		Forecaster:   forecast.NewHistoricalForecaster(s.Forecasts(), 30, d("1.05")).WithClock(func() time.Time { return now }),
		Weather:      weather,
	}, "operaciones", d("0.50")).WithClock(func() time.Time { return now })
	return uc, s
}

// Sin historial: 120 kg húmedos / 6 = 20 kg secos → 10 kg a 7 días y 16 kg a 14 días.
func TestRun_SinHistorialUsaInventarioVivo(t *testing.T) {
	ctx := context.Background()
	uc, s := newRun(t, nil)

	out, err := uc.Run(ctx)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	r := out.Results[0]
	assert.Equal(t, dto.ForecastSourceLiveStock, r.Source)
	assert.True(t, r.Capacity7.Equal(d("10")), "got %s", r.Capacity7)
	assert.True(t, r.Capacity14.Equal(d("16")), "got %s", r.Capacity14)
	assert.Nil(t, out.Weather)
	assert.Empty(t, out.AlertID)

	f7, _ := s.Forecasts().Latest(ctx, "sp1", entity.Horizon7Days)
	require.NotNil(t, f7)
	assert.True(t, f7.EstimatedCapacity.Equal(d("10")))
	f14, _ := s.Forecasts().Latest(ctx, "sp1", entity.Horizon14Days)
	require.NotNil(t, f14)
	assert.True(t, f14.EstimatedCapacity.Equal(d("16")))
}

// Historial 10, 20, 30 → 21 a 7 días y 33.6 a 14 días; lo anterior a la ventana se ignora.
func TestRun_MediaHistorica(t *testing.T) {
	ctx := context.Background()
	uc, s := newRun(t, nil)
	for i, v := range []string{"10", "20", "30"} {
		require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{
			ID: "h" + v, SpeciesID: "sp1", HorizonDays: entity.Horizon7Days,
			EstimatedCapacity: d(v), GeneratedAt: now.AddDate(0, 0, -(i + 1)),
		}))
	}
	require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{
		ID: "fuera", SpeciesID: "sp1", HorizonDays: entity.Horizon7Days,
		EstimatedCapacity: d("1000"), GeneratedAt: now.AddDate(0, 0, -31),
	}))

	out, err := uc.Run(ctx)
	require.NoError(t, err)
	r := out.Results[0]
	assert.Equal(t, dto.ForecastSourceHistory, r.Source)
	assert.True(t, r.Capacity7.Equal(d("21")), "got %s", r.Capacity7)
	assert.True(t, r.Capacity14.Equal(d("33.6")), "got %s", r.Capacity14)
}

func TestRun_ClimaFallaNoBloquea(t *testing.T) {
	for name, provider := range map[string]*stubWeather{
		"error":   {err: errors.New("503")},
		"timeout": {block: true},
	} {
		t.Run(name, func(t *testing.T) {
			uc, _ := newRun(t, provider)
			out, err := uc.Run(context.Background())
			require.NoError(t, err)
			assert.Nil(t, out.Weather)
			assert.Empty(t, out.AlertID)
			require.Len(t, out.Results, 1)
			assert.NotContains(t, out.Results[0].Message, "|")
			assert.True(t, out.Results[0].Capacity7.Equal(d("10")))
		})
	}
}

func TestRun_HumedadCriticaAnotaYAlerta(t *testing.T) {
	ctx := context.Background()
	uc, s := newRun(t, &stubWeather{reading: &entity.WeatherReading{Humidity: d("85"), Condition: "lluvia"}})

	out, err := uc.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, out.Weather)
	assert.Equal(t, entity.AlertLevelCritical, out.Weather.Severity)
	assert.Contains(t, out.Results[0].Message, "CRÍTICO")
	assert.True(t, out.Results[0].Capacity7.Equal(d("10")), "el clima no altera los valores")
	require.NotEmpty(t, out.AlertID)

	alert, err := s.Alerts().GetByID(ctx, out.AlertID)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, entity.AlertTypeAdverseWeather, alert.Type)
	assert.Equal(t, "operaciones", alert.RecipientID)
	assert.Contains(t, alert.Message, "humedad 85%")

	reading := s.Weather().Reading(now)
	require.NotNil(t, reading)
	assert.True(t, reading.Humidity.Equal(d("85")))
}

func TestRun_AlertaClimaMuestraHumedadMedida(t *testing.T) {
	ctx := context.Background()
	uc, s := newRun(t, &stubWeather{reading: &entity.WeatherReading{Humidity: d("80.4"), Condition: "llovizna"}})

	out, err := uc.Run(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, out.AlertID)

	alert, err := s.Alerts().GetByID(ctx, out.AlertID)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, entity.AlertLevelCritical, alert.Level)
	assert.Contains(t, alert.Message, "humedad 80.4%")
	assert.Contains(t, out.Results[0].Message, "humedad 80.4%")
}

func TestRun_FactorInvalidoNoAbortaLaCorrida(t *testing.T) {
	ctx := context.Background()
	uc, s := newRun(t, nil)
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp0", Name: "Mala", ConversionFactor: decimal.Zero}))
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{
		ID: "i0", BatchID: "b0", SpeciesID: "sp0", ZoneID: "z1", Quantity: d("50"), State: entity.ItemStateLive, UpdatedAt: now,
	}))

	out, err := uc.Run(ctx)
	require.NoError(t, err)
	require.Len(t, out.Results, 2)

	bySpecies := map[string]dto.ForecastResult{}
	for _, r := range out.Results {
		bySpecies[r.SpeciesID] = r
	}
	assert.NotEmpty(t, bySpecies["sp0"].Error)
	assert.Empty(t, bySpecies["sp1"].Error)

	f, _ := s.Forecasts().Latest(ctx, "sp0", entity.Horizon7Days)
	assert.Nil(t, f)
}
