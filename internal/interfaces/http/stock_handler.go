package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// StockHandler consultas del libro de existencias.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Existencias de un SKU en una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  path  string  true  "ID de la bodega"
// @Param        instance_id  path  string  true  "ID del SKU"
// @Success      200  {object}  dto.StoredProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{location_id}/{instance_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("location_id"), c.Params("instance_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByLocation godoc
// @Summary      Existencias de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  path   string  true   "ID de la bodega"
// @Param        limit        query  int     false  "Tamaño de página"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock/{location_id} [get]
func (h *StockHandler) ListByLocation(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	resp, err := h.uc.ListByLocation(c.Context(), c.Params("location_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
