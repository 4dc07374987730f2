package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Proyeccion-api/internal/application/forecast"
	"github.com/jhoicas/Proyeccion-api/internal/application/report"
)

// ForecastHandler corrida de proyección y reporte PDF.
type ForecastHandler struct {
	generate *forecast.GenerateUseCase
	report   *report.UseCase
}

// NewForecastHandler construye el handler.
func NewForecastHandler(generate *forecast.GenerateUseCase, reportUC *report.UseCase) *ForecastHandler {
	return &ForecastHandler{generate: generate, report: reportUC}
}

// Run godoc
// @Summary      Generar proyecciones
// @Description  Para cada especie con inventario vivo agrega una proyección a 7 y 14 días.
// @Description  El clima, si está disponible, solo anota el mensaje y puede generar una alerta.
// @Tags         forecasts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ForecastRunResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/forecasts/run [post]
func (h *ForecastHandler) Run(c *fiber.Ctx) error {
	out, err := h.generate.Run(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF de proyecciones
// @Description  Última proyección a 7 y 14 días por especie.
// @Tags         forecasts
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecasts/report.pdf [get]
func (h *ForecastHandler) ReportPDF(c *fiber.Ctx) error {
	doc, err := h.report.ForecastPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("proyeccion_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}
