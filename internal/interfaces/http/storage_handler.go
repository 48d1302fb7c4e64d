package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// StorageHandler CRUD de sucursales y bodegas.
type StorageHandler struct {
	uc *usecase.StorageUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *usecase.StorageUseCase) *StorageHandler {
	return &StorageHandler{uc: uc}
}

// CreateBranch crea una sucursal.
func (h *StorageHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es obligatorio"})
	}
	resp, err := h.uc.CreateBranch(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetBranch obtiene una sucursal por ID.
func (h *StorageHandler) GetBranch(c *fiber.Ctx) error {
	resp, err := h.uc.GetBranch(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateBranch actualiza una sucursal.
func (h *StorageHandler) UpdateBranch(c *fiber.Ctx) error {
	var in dto.UpdateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateBranch(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListBranches lista sucursales.
func (h *StorageHandler) ListBranches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	resp, err := h.uc.ListBranches(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteBranch elimina una sucursal.
func (h *StorageHandler) DeleteBranch(c *fiber.Ctx) error {
	if err := h.uc.DeleteBranch(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLocation crea una bodega.
func (h *StorageHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateStorageLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.BranchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y branch_id son obligatorios"})
	}
	resp, err := h.uc.CreateLocation(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetLocation obtiene una bodega por ID.
func (h *StorageHandler) GetLocation(c *fiber.Ctx) error {
	resp, err := h.uc.GetLocation(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateLocation actualiza una bodega.
func (h *StorageHandler) UpdateLocation(c *fiber.Ctx) error {
	var in dto.UpdateStorageLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateLocation(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListLocations lista las bodegas de una sucursal.
func (h *StorageHandler) ListLocations(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	resp, err := h.uc.ListLocations(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteLocation elimina una bodega.
func (h *StorageHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.uc.DeleteLocation(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
