package capacity

import (
	"fmt"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	humidityCritical = decimal.NewFromInt(80)
	humidityWarning  = decimal.NewFromInt(60)
)

// WeatherObservation entrada opcional del modificador climático.
// Available=false significa "sin datos" y nunca bloquea la proyección.
type WeatherObservation struct {
	Available bool
	Humidity  decimal.Decimal
	Condition string
}

// NoWeather observación ausente.
func NoWeather() WeatherObservation { return WeatherObservation{} }

// ObservedWeather observación válida.
func ObservedWeather(humidity decimal.Decimal, condition string) WeatherObservation {
	return WeatherObservation{Available: true, Humidity: humidity, Condition: condition}
}

// Severity nivel de alerta asociado a la humedad: > 80 CRITICAL, (60, 80] WARNING, vacío en otro caso.
func (o WeatherObservation) Severity() string {
	if !o.Available {
		return ""
	}
	switch {
	case o.Humidity.GreaterThan(humidityCritical):
		return entity.AlertLevelCritical
	case o.Humidity.GreaterThan(humidityWarning):
		return entity.AlertLevelWarning
	default:
		return ""
	}
}

// HumidityText humedad tal como se midió (sin redondear), para mensajes y alertas.
func (o WeatherObservation) HumidityText() string {
	return o.Humidity.String() + "%"
}

// Annotate agrega al mensaje de proyección una nota según la humedad. No altera valores numéricos.
func Annotate(message string, obs WeatherObservation) string {
	switch obs.Severity() {
	case entity.AlertLevelCritical:
		return fmt.Sprintf("%s | CRÍTICO: humedad %s (%s), secado comprometido", message, obs.HumidityText(), obs.Condition)
	case entity.AlertLevelWarning:
		return fmt.Sprintf("%s | ADVERTENCIA: humedad %s (%s), secado más lento", message, obs.HumidityText(), obs.Condition)
	default:
		return message
	}
}
