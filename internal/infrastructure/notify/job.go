package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

const (
	// QueueAlerts lista Redis con las alertas pendientes de envío.
	QueueAlerts = "jobs:alertas"
	// DLQPrefix prefijo de la cola de descarte: dlq:{cola}.
	DLQPrefix = "dlq:"

	jobTypeAlert = "alerta"
)

// Job sobre genérico de las tareas encoladas.
type Job struct {
	Type     string          `json:"type"`
	Attempts int             `json:"attempts"`
	Payload  json.RawMessage `json:"payload"`
}

// AlertPayload datos mínimos para enviar el correo de una alerta.
type AlertPayload struct {
	AlertID     string    `json:"alert_id"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Level       string    `json:"level"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// EncodeAlertJob serializa la alerta como Job listo para LPUSH.
func EncodeAlertJob(a *entity.Alert) ([]byte, error) {
	payload, err := json.Marshal(AlertPayload{
		AlertID:     a.ID,
		RecipientID: a.RecipientID,
		Type:        a.Type,
		Level:       a.Level,
		Message:     a.Message,
		CreatedAt:   a.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Job{Type: jobTypeAlert, Payload: payload})
}

// DecodeAlertJob lee un Job de alerta.
func DecodeAlertJob(raw []byte) (Job, AlertPayload, error) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return Job{}, AlertPayload{}, fmt.Errorf("decodificar job: %w", err)
	}
	if job.Type != jobTypeAlert {
		return job, AlertPayload{}, fmt.Errorf("tipo de job desconocido %q", job.Type)
	}
	var p AlertPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return job, AlertPayload{}, fmt.Errorf("decodificar alerta: %w", err)
	}
	if p.AlertID == "" {
		return job, AlertPayload{}, fmt.Errorf("alerta sin id")
	}
	return job, p, nil
}
