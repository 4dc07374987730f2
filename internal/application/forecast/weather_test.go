package forecast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/forecast"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestWeatherModifier_Observe(t *testing.T) {
	ctx := context.Background()

	obs, reading := forecast.NewWeatherModifier(nil, 0, nil, nil).Observe(ctx)
	assert.False(t, obs.Available, "sin proveedor no hay datos")
	assert.Nil(t, reading)

	obs, _ = forecast.NewWeatherModifier(&stubWeather{err: errors.New("payload inválido")}, 0, nil, nil).Observe(ctx)
	assert.False(t, obs.Available)

	start := time.Now()
	obs, _ = forecast.NewWeatherModifier(&stubWeather{block: true}, 20*time.Millisecond, nil, nil).Observe(ctx)
	assert.False(t, obs.Available)
	assert.Less(t, time.Since(start), time.Second, "el timeout acota la espera")

	m := forecast.NewWeatherModifier(&stubWeather{reading: &entity.WeatherReading{Humidity: d("70"), Condition: "nublado"}}, 0, nil, nil)
	obs, reading = m.Observe(ctx)
	assert.True(t, obs.Available)
	assert.NotNil(t, reading)
	assert.Contains(t, m.Adjust("Gracilaria", obs), "ADVERTENCIA")
}
