package http

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// ItemHandler maneja las peticiones HTTP de artículos, incluida la importación desde Excel.
type ItemHandler struct {
	uc       *usecase.CatalogUseCase
	importer *usecase.ImportItemsUseCase
	log      *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.CatalogUseCase, importer *usecase.ImportItemsUseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, importer: importer, log: log}
}

// List godoc
// @Summary      Listar artículos
// @Description  Ordenados por categoría y nombre. Con category_id filtra; una categoría inexistente devuelve [].
// @Tags         items
// @Produce      json
// @Param        category_id  query  int  false  "ID de la categoría"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(c, "INVALID_PARAMS", "category_id debe ser un entero")
		}
		categoryID = &id
	}
	out, err := h.uc.ListItems(c.UserContext(), categoryID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del artículo"
// @Param        body  body  dto.ItemRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.ItemRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateItem(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Falla con 409 si alguna línea de factura usa el artículo.
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.DeleteItem(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "artículo eliminado"})
}

// ImportExcel godoc
// @Summary      Importar artículos desde Excel
// @Description  Columnas: Category | Name | Price | Image URL (opcional). La primera fila es la cabecera.
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx"
// @Success      200   {object}  dto.ImportItemsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import-excel [post]
func (h *ItemHandler) ImportExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "se requiere el archivo en el campo 'file'")
	}
	// Solo OOXML: el lector no soporta el formato binario .xls.
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return badRequest(c, "INVALID_FILE", "el archivo debe ser .xlsx (guardar los .xls como .xlsx)")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, err)
	}
	defer f.Close()

	out, err := h.importer.Import(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
