package notify

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

var _ ports.AlertNotifier = (*Dispatcher)(nil)

// Dispatcher encola alertas en Redis; el pool de workers las consume con BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotifyAlert encola la alerta para envío por correo.
func (d *Dispatcher) NotifyAlert(ctx context.Context, a *entity.Alert) error {
	data, err := EncodeAlertJob(a)
	if err != nil {
		return fmt.Errorf("encolar alerta: %w", err)
	}
	if err := d.rdb.LPush(ctx, QueueAlerts, data).Err(); err != nil {
		return fmt.Errorf("encolar alerta: %w", err)
	}
	return nil
}

// QueueLength largo de la cola de alertas (para /health).
func (d *Dispatcher) QueueLength(ctx context.Context) (int64, error) {
	return d.rdb.LLen(ctx, QueueAlerts).Result()
}
