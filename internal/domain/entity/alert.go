package entity

import "time"

// Niveles de alerta.
const (
	AlertLevelCritical = "CRITICAL"
	AlertLevelWarning  = "WARNING"
)

// Tipos de alerta.
const (
	AlertTypeDeliveryRisk   = "INCUMPLIMIENTO OTD"
	AlertTypeAdverseWeather = "CLIMA ADVERSO"
)

// Alert condición de riesgo dirigida a un operador. Se crea y no se modifica, salvo Notified.
type Alert struct {
	ID          string
	RecipientID string
	Type        string
	Message     string
	Level       string
	CreatedAt   time.Time
	Notified    bool
}
