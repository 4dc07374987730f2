package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/feasibility"
	"github.com/jhoicas/Proyeccion-api/internal/application/intake"
)

// InventoryHandler registro de biomasa, secado y consulta de capacidad.
type InventoryHandler struct {
	intake    *intake.UseCase
	evaluator *feasibility.Evaluator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(intakeUC *intake.UseCase, evaluator *feasibility.Evaluator) *InventoryHandler {
	return &InventoryHandler{intake: intakeUC, evaluator: evaluator}
}

// RegisterBiomass godoc
// @Summary      Registrar biomasa húmeda
// @Description  Crea un lote y un item de inventario LIVE con la masa húmeda cosechada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterBiomassRequest  true  "species_id, zone_id, wet_mass"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/biomass [post]
func (h *InventoryHandler) RegisterBiomass(c *fiber.Ctx) error {
	var in dto.RegisterBiomassRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.intake.RegisterBiomass(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obtener item de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.intake.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StartDrying godoc
// @Summary      Iniciar secado
// @Description  LIVE → DRYING. 409 si el item no está LIVE.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/drying [post]
func (h *InventoryHandler) StartDrying(c *fiber.Ctx) error {
	out, err := h.intake.StartDrying(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FinishDrying godoc
// @Summary      Terminar secado
// @Description  DRYING → DRY con la masa seca resultante; registra la masa seca final del lote.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del item"
// @Param        body  body  dto.FinishDryingRequest  true  "dry_mass"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/dry [post]
func (h *InventoryHandler) FinishDrying(c *fiber.Ctx) error {
	var in dto.FinishDryingRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.intake.FinishDrying(c.Context(), c.Params("id"), in.DryMass)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Capacity godoc
// @Summary      Capacidad disponible de una especie
// @Description  Stock (LIVE convertido + DRY) más la proyección vigente que cubre el plazo (solo plazos <= 14 días).
// @Tags         capacity
// @Security     Bearer
// @Produce      json
// @Param        species_id  path   string  true   "ID de la especie"
// @Param        lead_days   query  int     false  "Días hasta la entrega (default 0)"
// @Success      200  {object}  dto.CapacityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/capacity/{species_id} [get]
func (h *InventoryHandler) Capacity(c *fiber.Ctx) error {
	leadDays := c.QueryInt("lead_days", 0)
	out, err := h.evaluator.Capacity(c.Context(), c.Params("species_id"), leadDays)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
