package ports

// Metrics registra eventos del motor de factibilidad.
type Metrics interface {
	ObserveDecision(verdict string)
	ObserveReservationRace()
	ObserveForecastRun(speciesCount int, fallbackCount int)
	ObserveWeatherFallback()
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) ObserveDecision(string) {}
func (NopMetrics) ObserveReservationRace() {}
func (NopMetrics) ObserveForecastRun(int, int) {}
func (NopMetrics) ObserveWeatherFallback() {}
