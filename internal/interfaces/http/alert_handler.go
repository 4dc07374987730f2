package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Proyeccion-api/internal/application/alert"
)

// AlertHandler consulta y notificación de alertas.
type AlertHandler struct {
	uc *alert.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alert.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        recipient_id  query  string  false  "destinatario (vacío = todas)"
// @Param        pending       query  bool    false  "solo no notificadas"
// @Param        limit         query  int     false  "máximo de resultados (default 20)"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), c.Query("recipient_id"), c.QueryBool("pending", false), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkNotified godoc
// @Summary      Marcar alerta como notificada
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/notified [post]
func (h *AlertHandler) MarkNotified(c *fiber.Ctx) error {
	out, err := h.uc.MarkNotified(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Redispatch godoc
// @Summary      Reencolar alertas pendientes
// @Description  Vuelve a encolar para envío por correo las alertas aún no notificadas.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de alertas (default 100)"
// @Success      200  {object}  map[string]int
// @Router       /api/alerts/redispatch [post]
func (h *AlertHandler) Redispatch(c *fiber.Ctx) error {
	n, err := h.uc.Redispatch(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"enqueued": n})
}
