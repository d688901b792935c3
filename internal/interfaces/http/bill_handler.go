package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// BillHandler maneja las peticiones HTTP de facturas y sus recibos.
type BillHandler struct {
	uc      *billing.BillUseCase
	receipt *billing.ReceiptUseCase
	log     *logger.Logger
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.BillUseCase, receipt *billing.ReceiptUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{uc: uc, receipt: receipt, log: log}
}

// Create godoc
// @Summary      Crear factura
// @Description  Los subtotales y el total se recalculan en el servidor; un subtotal enviado que no coincida es rechazado.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BillRequest  true  "Líneas de la factura"
// @Success      201   {object}  dto.CreateBillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.BillRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateBill(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Description  Más recientes primero.
// @Tags         bills
// @Produce      json
// @Success      200  {array}  dto.BillResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListBills(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         bills
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.BillDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.GetBill(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar las líneas de una factura
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la factura"
// @Param        body  body  dto.BillRequest  true  "Nuevas líneas"
// @Success      200   {object}  dto.BillDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [put]
func (h *BillHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.BillRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateBill(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         bills
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [delete]
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.DeleteBill(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "factura eliminada"})
}

// Clear godoc
// @Summary      Eliminar todas las facturas
// @Description  El catálogo no se modifica.
// @Tags         bills
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/bills/clear [post]
func (h *BillHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.ClearAllBills(c.UserContext()); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "todas las facturas fueron eliminadas"})
}

// Receipt godoc
// @Summary      Descargar recibo PDF
// @Tags         bills
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/receipt [get]
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	pdf, filename, err := h.receipt.GenerateReceipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
