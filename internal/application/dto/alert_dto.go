package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Level       string    `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	Notified    bool      `json:"notified"`
}

// AlertListResponse listado paginado de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
