package ports

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// AlertNotifier encola la notificación de una alerta al destinatario (best-effort).
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, alert *entity.Alert) error
}

// NopNotifier descarta las notificaciones (sin cola configurada).
type NopNotifier struct{}

// NotifyAlert no hace nada.
func (NopNotifier) NotifyAlert(context.Context, *entity.Alert) error { return nil }
