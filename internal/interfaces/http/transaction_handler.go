package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// TransactionHandler maneja el ciclo de vida de las transacciones de
// inventario: compras, ventas y ajustes, con sus líneas y pagos.
type TransactionHandler struct {
	uc       *inventory.TransactionUseCase
	importUC *inventory.ImportProcurementUseCase
	pdfUC    *inventory.PurchaseOrderPDFUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(
	uc *inventory.TransactionUseCase,
	importUC *inventory.ImportProcurementUseCase,
	pdfUC *inventory.PurchaseOrderPDFUseCase,
) *TransactionHandler {
	return &TransactionHandler{uc: uc, importUC: importUC, pdfUC: pdfUC}
}

// CreateProcurement godoc
// @Summary      Crear compra a proveedor
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProcurementRequest  true  "bodega, proveedor, líneas y pagos iniciales"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/procurements [post]
func (h *TransactionHandler) CreateProcurement(c *fiber.Ctx) error {
	var in dto.CreateProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CreateProcurement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateSale godoc
// @Summary      Crear venta a cliente
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "bodega, cliente, líneas y pagos iniciales"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/sales [post]
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CreateSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateAdjustment godoc
// @Summary      Crear ajuste de inventario
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "bodega y líneas (sin pagos)"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/adjustments [post]
func (h *TransactionHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CreateAdjustment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        kind                 query  string  false  "PROCUREMENT | SALE | ADJUSTMENT"
// @Param        storage_location_id  query  string  false  "Filtrar por bodega"
// @Param        from                 query  string  false  "Fecha mínima (RFC3339)"
// @Param        to                   query  string  false  "Fecha máxima (RFC3339)"
// @Param        limit                query  int     false  "Tamaño de página (default 20)"
// @Param        offset               query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	var kind *transaction.Kind
	if raw := c.Query("kind"); raw != "" {
		k := transaction.Kind(raw)
		kind = &k
	}
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}

	resp, err := h.uc.List(c.Context(), kind, c.Query("storage_location_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// AddItems agrega líneas a una transacción DRAFT.
func (h *TransactionHandler) AddItems(c *fiber.Ctx) error {
	var items []dto.TransactionItemRequest
	if err := c.BodyParser(&items); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddItems(c.Context(), c.Params("id"), items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateItems actualiza líneas existentes (precio, cantidad, seriales).
func (h *TransactionHandler) UpdateItems(c *fiber.Ctx) error {
	var items []dto.UpdateTransactionItemRequest
	if err := c.BodyParser(&items); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateItems(c.Context(), c.Params("id"), items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// RemoveItems elimina líneas y revierte su efecto en bodega.
func (h *TransactionHandler) RemoveItems(c *fiber.Ctx) error {
	var body struct {
		ProductInstanceIDs []string `json:"product_instance_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.RemoveItems(c.Context(), c.Params("id"), body.ProductInstanceIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// AddPayments registra pagos sobre una compra o venta.
func (h *TransactionHandler) AddPayments(c *fiber.Ctx) error {
	var payments []dto.PaymentRequest
	if err := c.BodyParser(&payments); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddPayments(c.Context(), c.Params("id"), payments)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdatePayments actualiza pagos existentes por id.
func (h *TransactionHandler) UpdatePayments(c *fiber.Ctx) error {
	var payments []dto.UpdatePaymentRequest
	if err := c.BodyParser(&payments); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdatePayments(c.Context(), c.Params("id"), payments)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// RemovePayments elimina pagos por id.
func (h *TransactionHandler) RemovePayments(c *fiber.Ctx) error {
	var body struct {
		PaymentIDs []string `json:"payment_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.RemovePayments(c.Context(), c.Params("id"), body.PaymentIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateSupplier cambia el proveedor de una compra DRAFT.
func (h *TransactionHandler) UpdateSupplier(c *fiber.Ctx) error {
	var body struct {
		SupplierID string `json:"supplier_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateSupplier(c.Context(), c.Params("id"), body.SupplierID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateClient cambia el cliente de una venta DRAFT.
func (h *TransactionHandler) UpdateClient(c *fiber.Ctx) error {
	var body struct {
		ClientID string `json:"client_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateClient(c.Context(), c.Params("id"), body.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Process cierra la transacción (DRAFT -> PROCESSED).
func (h *TransactionHandler) Process(c *fiber.Ctx) error {
	resp, err := h.uc.Process(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Reopen reabre una transacción procesada (PROCESSED -> DRAFT).
func (h *TransactionHandler) Reopen(c *fiber.Ctx) error {
	resp, err := h.uc.Reopen(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Cancel cancela la transacción (estado terminal, no revierte stock).
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	resp, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ImportProcurement godoc
// @Summary      Importar compra desde factura XML de proveedor
// @Description  Idempotente: la huella canónica del documento evita compras duplicadas.
// @Tags         transactions
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Param        storage_location_id  query  string  true  "Bodega de destino"
// @Success      201  {object}  dto.ImportProcurementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/procurements/import [post]
func (h *TransactionHandler) ImportProcurement(c *fiber.Ctx) error {
	locationID := c.Query("storage_location_id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "storage_location_id es obligatorio"})
	}
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML vacío"})
	}
	resp, err := h.importUC.Import(c.Context(), locationID, body)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if resp.Duplicated {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(resp)
}

// PurchaseOrderPDF descarga la orden de compra en PDF.
func (h *TransactionHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	data, err := h.pdfUC.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="orden-compra-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// fecha sin hora también es válida
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
