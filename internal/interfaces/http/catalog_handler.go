package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Proyeccion-api/internal/application/catalog"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
)

// CatalogHandler especies y zonas de cultivo.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateSpecies godoc
// @Summary      Crear especie
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSpeciesRequest  true  "nombre y factor de conversión (> 0)"
// @Success      201   {object}  dto.SpeciesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/species [post]
func (h *CatalogHandler) CreateSpecies(c *fiber.Ctx) error {
	var in dto.CreateSpeciesRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateSpecies(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSpecies godoc
// @Summary      Listar especies
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SpeciesResponse
// @Router       /api/species [get]
func (h *CatalogHandler) ListSpecies(c *fiber.Ctx) error {
	out, err := h.uc.ListSpecies(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSpecies godoc
// @Summary      Eliminar especie
// @Description  409 si la especie tiene lotes, inventario, pedidos o proyecciones.
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la especie"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/species/{id} [delete]
func (h *CatalogHandler) DeleteSpecies(c *fiber.Ctx) error {
	if err := h.uc.DeleteSpecies(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateZone godoc
// @Summary      Crear zona de cultivo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateZoneRequest  true  "nombre y ubicación"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zones [post]
func (h *CatalogHandler) CreateZone(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateZone(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListZones godoc
// @Summary      Listar zonas de cultivo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ZoneResponse
// @Router       /api/zones [get]
func (h *CatalogHandler) ListZones(c *fiber.Ctx) error {
	out, err := h.uc.ListZones(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteZone godoc
// @Summary      Eliminar zona de cultivo
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la zona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [delete]
func (h *CatalogHandler) DeleteZone(c *fiber.Ctx) error {
	if err := h.uc.DeleteZone(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
