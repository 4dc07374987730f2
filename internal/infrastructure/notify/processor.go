package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
)

// AlertMarker marca alertas como notificadas (repositorio de alertas).
type AlertMarker interface {
	MarkNotified(ctx context.Context, id string) error
}

// ErrPermanent el job no se reintenta (va directo a la DLQ).
var ErrPermanent = errors.New("fallo permanente")

// Processor envía por correo la alerta de un job y la marca notificada.
type Processor struct {
	sender    Sender
	marker    AlertMarker
	recipient string
	log       *logger.Logger
}

// NewProcessor construye el procesador. recipientEmail es el correo del destinatario configurado.
func NewProcessor(sender Sender, marker AlertMarker, recipientEmail string, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{sender: sender, marker: marker, recipient: recipientEmail, log: log}
}

// Process procesa un job crudo. Errores envueltos en ErrPermanent no deben reintentarse.
func (p *Processor) Process(ctx context.Context, raw []byte) error {
	_, payload, err := DecodeAlertJob(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermanent, err)
	}
	if p.recipient == "" {
		return fmt.Errorf("%w: sin correo de destinatario configurado", ErrPermanent)
	}

	subject := fmt.Sprintf("[%s] %s", payload.Level, payload.Type)
	if err := p.sender.Send(p.recipient, subject, alertBody(payload)); err != nil {
		return err
	}
	if err := p.marker.MarkNotified(ctx, payload.AlertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: alerta %s no existe", ErrPermanent, payload.AlertID)
		}
		return fmt.Errorf("marcar alerta notificada: %w", err)
	}
	p.log.Info().Str("alert_id", payload.AlertID).Str("type", payload.Type).Msg("alerta notificada por correo")
	return nil
}

func alertBody(p AlertPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tipo: %s\n", p.Type)
	fmt.Fprintf(&b, "Nivel: %s\n", p.Level)
	fmt.Fprintf(&b, "Fecha: %s\n\n", p.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString(p.Message)
	b.WriteString("\n")
	return b.String()
}
