package capacity_test

import (
	"testing"

	"github.com/jhoicas/Proyeccion-api/internal/domain/capacity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnnotate_SegunHumedad(t *testing.T) {
	const msg = "Gracilaria: 10.00 kg secos a 7 días"
	cases := []struct {
		name     string
		obs      capacity.WeatherObservation
		severity string
		contains string
	}{
		{"sin datos", capacity.NoWeather(), "", ""},
		{"seco", capacity.ObservedWeather(decimal.NewFromInt(45), "despejado"), "", ""},
		{"límite 60 sin nota", capacity.ObservedWeather(decimal.NewFromInt(60), "nublado"), "", ""},
		{"60.5 advertencia", capacity.ObservedWeather(decimal.RequireFromString("60.5"), "nublado"), entity.AlertLevelWarning, "ADVERTENCIA"},
		{"límite 80 advertencia", capacity.ObservedWeather(decimal.NewFromInt(80), "llovizna"), entity.AlertLevelWarning, "ADVERTENCIA"},
		{"81 crítico", capacity.ObservedWeather(decimal.NewFromInt(81), "lluvia"), entity.AlertLevelCritical, "CRÍTICO"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.severity, c.obs.Severity())
			got := capacity.Annotate(msg, c.obs)
			if c.contains == "" {
				assert.Equal(t, msg, got, "sin anotación el mensaje no cambia")
				return
			}
			assert.Contains(t, got, msg)
			assert.Contains(t, got, c.contains)
			assert.Contains(t, got, c.obs.Condition)
		})
	}
}

func TestAnnotate_HumedadSinRedondear(t *testing.T) {
	critico := capacity.Annotate("m", capacity.ObservedWeather(decimal.RequireFromString("80.4"), "lluvia"))
	assert.Contains(t, critico, "CRÍTICO: humedad 80.4%")

	advertencia := capacity.Annotate("m", capacity.ObservedWeather(decimal.RequireFromString("60.4"), "nublado"))
	assert.Contains(t, advertencia, "ADVERTENCIA: humedad 60.4%")
}
