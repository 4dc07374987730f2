package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/inventory"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxParallelSpecies especies proyectadas en paralelo por corrida.
const maxParallelSpecies = 4

// GenerateUseCase corrida de proyección (calcular_proyeccion): para cada especie con inventario vivo
// agrega una proyección a 7 y otra a 14 días al log.
type GenerateUseCase struct {
	speciesRepo  repository.SpeciesRepository
	itemRepo     repository.InventoryItemRepository
	forecastRepo repository.ForecastRepository
	alertRepo    repository.AlertRepository
	weatherRepo  repository.WeatherRepository
	forecaster   *HistoricalForecaster
	weather      *WeatherModifier
	notifier     ports.AlertNotifier
	metrics      ports.Metrics
	recipientID  string
	utilization  decimal.Decimal
	now          func() time.Time
	log          *logger.Logger
}

// GenerateDeps dependencias de la corrida.
type GenerateDeps struct {
	SpeciesRepo  repository.SpeciesRepository
	ItemRepo     repository.InventoryItemRepository
	ForecastRepo repository.ForecastRepository
	AlertRepo    repository.AlertRepository
	WeatherRepo  repository.WeatherRepository
	Forecaster   *HistoricalForecaster
	Weather      *WeatherModifier
	Notifier     ports.AlertNotifier
	Metrics      ports.Metrics
	Logger       *logger.Logger
}

// NewGenerateUseCase construye la corrida. recipientID recibe las alertas de clima adverso;
// utilization es la fracción del inventario vivo usada sin historial (default 0.50).
func NewGenerateUseCase(deps GenerateDeps, recipientID string, utilization decimal.Decimal) *GenerateUseCase {
	if !utilization.IsPositive() {
		utilization = capacity.DefaultFallbackUtilization
	}
	if deps.Weather == nil {
		deps.Weather = NewWeatherModifier(nil, 0, deps.Metrics, deps.Logger)
	}
	if deps.Notifier == nil {
		deps.Notifier = ports.NopNotifier{}
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &GenerateUseCase{
		speciesRepo:  deps.SpeciesRepo,
		itemRepo:     deps.ItemRepo,
		forecastRepo: deps.ForecastRepo,
		alertRepo:    deps.AlertRepo,
		weatherRepo:  deps.WeatherRepo,
		forecaster:   deps.Forecaster,
		weather:      deps.Weather,
		notifier:     deps.Notifier,
		metrics:      deps.Metrics,
		recipientID:  recipientID,
		utilization:  utilization,
		now:          time.Now,
		log:          deps.Logger,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *GenerateUseCase) WithClock(now func() time.Time) *GenerateUseCase {
	uc.now = now
	return uc
}

// Run ejecuta la corrida. Una especie con factor inválido queda reportada en su fila sin abortar
// las demás; cualquier otro error aborta la corrida.
func (uc *GenerateUseCase) Run(ctx context.Context) (*dto.ForecastRunResponse, error) {
	generatedAt := uc.now()
	obs, reading := uc.weather.Observe(ctx)
	if reading != nil && uc.weatherRepo != nil {
		if reading.Date.IsZero() {
			reading.Date = generatedAt
		}
		if err := uc.weatherRepo.Upsert(ctx, reading); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar la lectura climática")
		}
	}

	speciesIDs, err := uc.itemRepo.SpeciesWithStock(ctx, entity.ItemStateLive)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ForecastResult, len(speciesIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSpecies)
	for i, speciesID := range speciesIDs {
		i, speciesID := i, speciesID
		g.Go(func() error {
			res, err := uc.forecastSpecies(gctx, speciesID, generatedAt, obs)
			if errors.Is(err, domain.ErrInvalidFactor) {
				uc.log.Error().Err(err).Str("species_id", speciesID).Msg("factor de conversión inválido, especie omitida")
				results[i] = dto.ForecastResult{SpeciesID: speciesID, Error: err.Error()}
				return nil
			}
			if err != nil {
				return fmt.Errorf("proyección especie %s: %w", speciesID, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fallbacks := 0
	for _, r := range results {
		if r.Source == dto.ForecastSourceLiveStock {
			fallbacks++
		}
	}
	uc.metrics.ObserveForecastRun(len(results), fallbacks)

	out := &dto.ForecastRunResponse{GeneratedAt: generatedAt, Results: results}
	if obs.Available {
		out.Weather = &dto.WeatherResponse{Humidity: obs.Humidity, Condition: obs.Condition, Severity: obs.Severity()}
	}
	if severity := obs.Severity(); severity != "" {
		alert, err := uc.raiseWeatherAlert(ctx, obs, generatedAt)
		if err != nil {
			return nil, err
		}
		out.AlertID = alert.ID
	}

	uc.log.Info().
		Int("species", len(results)).
		Int("fallbacks", fallbacks).
		Bool("weather", obs.Available).
		Msg("proyección generada")
	return out, nil
}

func (uc *GenerateUseCase) forecastSpecies(ctx context.Context, speciesID string, generatedAt time.Time, obs capacity.WeatherObservation) (*dto.ForecastResult, error) {
	sp, err := uc.speciesRepo.GetByID(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	if err := inventory.ValidateFactor(sp.ConversionFactor); err != nil {
		return nil, fmt.Errorf("especie %s: %w", sp.Name, err)
	}

	est, err := uc.forecaster.Forecast7Days(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	capacity7 := est.Capacity
	source := dto.ForecastSourceHistory
	if !est.HasHistory {
		live, err := uc.itemRepo.SumBySpeciesAndState(ctx, speciesID, entity.ItemStateLive)
		if err != nil {
			return nil, err
		}
		liveDry, err := inventory.DryCapacity(live, sp.ConversionFactor)
		if err != nil {
			return nil, err
		}
		capacity7 = capacity.ColdStartEstimate(liveDry, uc.utilization)
		source = dto.ForecastSourceLiveStock
	}
	capacity7 = capacity7.Round(2)
	capacity14 := uc.forecaster.Forecast14Days(capacity7).Round(2)

	for _, f := range []*entity.CapacityForecast{
		{ID: uuid.New().String(), SpeciesID: speciesID, HorizonDays: entity.Horizon7Days, EstimatedCapacity: capacity7, GeneratedAt: generatedAt},
		{ID: uuid.New().String(), SpeciesID: speciesID, HorizonDays: entity.Horizon14Days, EstimatedCapacity: capacity14, GeneratedAt: generatedAt},
	} {
		if err := uc.forecastRepo.Create(ctx, f); err != nil {
			return nil, err
		}
	}

	message := fmt.Sprintf("%s: %s kg secos a 7 días, %s kg a 14 días", sp.Name, capacity7.StringFixed(2), capacity14.StringFixed(2))
	return &dto.ForecastResult{
		SpeciesID:   speciesID,
		SpeciesName: sp.Name,
		Capacity7:   capacity7,
		Capacity14:  capacity14,
		Source:      source,
		Message:     uc.weather.Adjust(message, obs),
	}, nil
}

func (uc *GenerateUseCase) raiseWeatherAlert(ctx context.Context, obs capacity.WeatherObservation, at time.Time) (*entity.Alert, error) {
	alert := &entity.Alert{
		ID:          uuid.New().String(),
		RecipientID: uc.recipientID,
		Type:        entity.AlertTypeAdverseWeather,
		Message: fmt.Sprintf("Clima adverso: humedad %s (%s). Secado de biomasa comprometido.",
			obs.HumidityText(), obs.Condition),
		Level:     obs.Severity(),
		CreatedAt: at,
	}
	if err := uc.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	if err := uc.notifier.NotifyAlert(ctx, alert); err != nil {
		uc.log.Warn().Err(err).Str("alert_id", alert.ID).Msg("no se pudo encolar la notificación")
	}
	return alert, nil
}
