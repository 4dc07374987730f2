package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors_Contadores(t *testing.T) {
	c := metrics.New()
	c.ObserveDecision("FEASIBLE")
	c.ObserveDecision("FEASIBLE")
	c.ObserveDecision("AT_RISK")
	c.ObserveReservationRace()
	c.ObserveForecastRun(3, 1)
	c.ObserveWeatherFallback()

	n, err := testutil.GatherAndCount(c.Registry(), "proyeccion_feasibility_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(c.Registry(),
		"proyeccion_reservation_races_total",
		"proyeccion_forecast_runs_total",
		"proyeccion_weather_unavailable_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCollectors_Handler(t *testing.T) {
	c := metrics.New()
	c.ObserveForecastRun(2, 0)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "proyeccion_forecast_last_run_species 2")
}
