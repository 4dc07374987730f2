package alert

import (
	"context"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
)

// UseCase consulta y notificación de alertas.
type UseCase struct {
	alertRepo repository.AlertRepository
	notifier  ports.AlertNotifier
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(alertRepo repository.AlertRepository, notifier ports.AlertNotifier, log *logger.Logger) *UseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{alertRepo: alertRepo, notifier: notifier, log: log}
}

// List alertas de un destinatario (vacío = todas), más recientes primero.
func (uc *UseCase) List(ctx context.Context, recipientID string, onlyPending bool, page dto.PageRequest) (*dto.AlertListResponse, error) {
	page.DefaultPage()
	alerts, err := uc.alertRepo.ListByRecipient(ctx, recipientID, onlyPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.AlertListResponse{
		Items: make([]dto.AlertResponse, 0, len(alerts)),
		Page:  page.Response(0),
	}
	for _, a := range alerts {
		out.Items = append(out.Items, toAlertResponse(a))
	}
	return out, nil
}

// MarkNotified marca la alerta como notificada.
func (uc *UseCase) MarkNotified(ctx context.Context, id string) (*dto.AlertResponse, error) {
	if err := uc.alertRepo.MarkNotified(ctx, id); err != nil {
		return nil, err
	}
	a, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	resp := toAlertResponse(a)
	return &resp, nil
}

// Redispatch vuelve a encolar las alertas pendientes de notificación. Devuelve cuántas se encolaron.
func (uc *UseCase) Redispatch(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	pending, err := uc.alertRepo.ListByRecipient(ctx, "", true, limit, 0)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range pending {
		if err := uc.notifier.NotifyAlert(ctx, a); err != nil {
			uc.log.Warn().Err(err).Str("alert_id", a.ID).Msg("no se pudo encolar la notificación")
			continue
		}
		n++
	}
	return n, nil
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:          a.ID,
		RecipientID: a.RecipientID,
		Type:        a.Type,
		Message:     a.Message,
		Level:       a.Level,
		CreatedAt:   a.CreatedAt,
		Notified:    a.Notified,
	}
}
