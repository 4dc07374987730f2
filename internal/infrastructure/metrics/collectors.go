package metrics

import (
	"net/http"

	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ ports.Metrics = (*Collectors)(nil)

const namespace = "proyeccion"

// Collectors métricas Prometheus del motor de factibilidad.
type Collectors struct {
	registry         *prometheus.Registry
	decisions        *prometheus.CounterVec
	races            prometheus.Counter
	forecastRuns     prometheus.Counter
	forecastSpecies  prometheus.Gauge
	forecastFallback prometheus.Gauge
	weatherFallbacks prometheus.Counter
}

// New registra las métricas en un registry propio (incluye collectors de Go y proceso).
func New() *Collectors {
	reg := prometheus.NewRegistry()
	c := &Collectors{
		registry: reg,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feasibility_decisions_total",
			Help:      "Decisiones de factibilidad por veredicto.",
		}, []string{"verdict"}),
		races: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_races_total",
			Help:      "Reservas abortadas porque el inventario cambió entre evaluación y compromiso.",
		}),
		forecastRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_runs_total",
			Help:      "Corridas de generación de proyecciones.",
		}),
		forecastSpecies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_last_run_species",
			Help:      "Especies proyectadas en la última corrida.",
		}),
		forecastFallback: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_last_run_fallbacks",
			Help:      "Especies sin historial (proyección desde inventario vivo) en la última corrida.",
		}),
		weatherFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_unavailable_total",
			Help:      "Consultas al proveedor climático que fallaron o vencieron.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.decisions, c.races, c.forecastRuns, c.forecastSpecies, c.forecastFallback, c.weatherFallbacks,
	)
	return c
}

// Registry registry subyacente (tests y exposición).
func (c *Collectors) Registry() *prometheus.Registry { return c.registry }

// Handler handler HTTP para /metrics.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collectors) ObserveDecision(verdict string) {
	c.decisions.WithLabelValues(verdict).Inc()
}

func (c *Collectors) ObserveReservationRace() {
	c.races.Inc()
}

func (c *Collectors) ObserveForecastRun(speciesCount int, fallbackCount int) {
	c.forecastRuns.Inc()
	c.forecastSpecies.Set(float64(speciesCount))
	c.forecastFallback.Set(float64(fallbackCount))
}

func (c *Collectors) ObserveWeatherFallback() {
	c.weatherFallbacks.Inc()
}
