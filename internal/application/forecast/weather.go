package forecast

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
)

// DefaultWeatherTimeout tope de espera al proveedor climático.
const DefaultWeatherTimeout = 2 * time.Second

// WeatherModifier obtiene la señal climática opcional y anota los mensajes de proyección.
// Nunca devuelve error: cualquier falla se traduce en capacity.NoWeather().
type WeatherModifier struct {
	provider ports.WeatherProvider
	timeout  time.Duration
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewWeatherModifier construye el modificador. provider nil deshabilita la señal climática.
func NewWeatherModifier(provider ports.WeatherProvider, timeout time.Duration, metrics ports.Metrics, log *logger.Logger) *WeatherModifier {
	if timeout <= 0 {
		timeout = DefaultWeatherTimeout
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WeatherModifier{provider: provider, timeout: timeout, metrics: metrics, log: log}
}

// Observe consulta al proveedor con timeout acotado. La lectura es nil cuando no hay datos.
func (m *WeatherModifier) Observe(ctx context.Context) (capacity.WeatherObservation, *entity.WeatherReading) {
	if m.provider == nil {
		return capacity.NoWeather(), nil
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	reading, err := m.provider.CurrentConditions(ctx)
	if err != nil || reading == nil {
		m.metrics.ObserveWeatherFallback()
		m.log.Warn().Err(err).Msg("clima no disponible, se proyecta sin anotación")
		return capacity.NoWeather(), nil
	}
	return capacity.ObservedWeather(reading.Humidity, reading.Condition), reading
}

// Adjust anota el mensaje según la humedad observada.
func (m *WeatherModifier) Adjust(message string, obs capacity.WeatherObservation) string {
	return capacity.Annotate(message, obs)
}
