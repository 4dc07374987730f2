package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/alert"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct{ ids []string }

func (n *countingNotifier) NotifyAlert(_ context.Context, a *entity.Alert) error {
	n.ids = append(n.ids, a.ID)
	return nil
}

func TestAlertas_ListarMarcarYReencolar(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"a1", "a2", "a3"} {
		recipient := "operaciones"
		if id == "a3" {
			recipient = "planta"
		}
		require.NoError(t, s.Alerts().Create(ctx, &entity.Alert{
			ID: id, RecipientID: recipient, Type: entity.AlertTypeDeliveryRisk,
			Level: entity.AlertLevelCritical, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	notifier := &countingNotifier{}
	uc := alert.NewUseCase(s.Alerts(), notifier, nil)

	list, err := uc.List(ctx, "operaciones", false, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a2", list.Items[0].ID, "más reciente primero")
	assert.Equal(t, 20, list.Page.Limit)

	marked, err := uc.MarkNotified(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, marked.Notified)

	_, err = uc.MarkNotified(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pending, err := uc.List(ctx, "", true, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, pending.Items, 2)

	n, err := uc.Redispatch(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"a2", "a3"}, notifier.ids)
}
