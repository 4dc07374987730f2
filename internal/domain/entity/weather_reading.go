package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeatherReading datos climáticos diarios obtenidos del proveedor externo (uno por fecha).
type WeatherReading struct {
	Date           time.Time
	Humidity       decimal.Decimal
	SolarRadiation decimal.Decimal
	Condition      string
}
