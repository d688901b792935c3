package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
)

// Columnas esperadas: Category | Name | Price | Image URL (opcional).
const (
	colCategory = iota
	colName
	colPrice
	colImageURL
)

// ImportItemsUseCase importa artículos desde una hoja de cálculo.
// Las categorías deben existir; no se crean automáticamente.
type ImportItemsUseCase struct {
	catalog *CatalogUseCase
	reader  ports.SpreadsheetReader
}

// NewImportItemsUseCase construye el caso de uso.
func NewImportItemsUseCase(catalog *CatalogUseCase, reader ports.SpreadsheetReader) *ImportItemsUseCase {
	return &ImportItemsUseCase{catalog: catalog, reader: reader}
}

type importRow struct {
	line int
	req  dto.ItemRequest
}

// Import lee el archivo, valida cada fila y crea los artículos válidos uno a uno.
// Los errores por fila no detienen la importación; se devuelven en la respuesta.
func (uc *ImportItemsUseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportItemsResponse, error) {
	rows, err := uc.reader.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo leer el archivo: %v", domain.ErrInvalidInput, err)
	}
	// cases.Caser guarda estado: uno por importación.
	folder := cases.Fold()
	fold := func(s string) string { return folder.String(strings.TrimSpace(s)) }
	index, err := uc.catalog.CategoryIndex(ctx, fold)
	if err != nil {
		return nil, err
	}

	errs := make([]string, 0)
	pending := make([]importRow, 0, len(rows))
	// La fila 1 es la cabecera.
	for i := 1; i < len(rows); i++ {
		line := i + 1
		row := rows[i]
		if isBlank(row) {
			continue
		}
		category, name, price := cell(row, colCategory), cell(row, colName), cell(row, colPrice)
		if category == "" || name == "" || price == "" {
			errs = append(errs, fmt.Sprintf("Fila %d: faltan campos requeridos (Category, Name, Price)", line))
			continue
		}
		amount, err := decimal.NewFromString(price)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Fila %d: precio inválido %q", line, price))
			continue
		}
		categoryID, ok := index[fold(category)]
		if !ok {
			errs = append(errs, fmt.Sprintf("Fila %d: categoría %q no encontrada", line, category))
			continue
		}
		var imageURL *string
		if v := cell(row, colImageURL); v != "" {
			imageURL = &v
		}
		pending = append(pending, importRow{line: line, req: dto.ItemRequest{
			CategoryID: categoryID,
			Name:       name,
			Price:      &amount,
			ImageURL:   imageURL,
		}})
	}

	created := 0
	for _, p := range pending {
		if _, err := uc.catalog.CreateItem(ctx, p.req); err != nil {
			errs = append(errs, fmt.Sprintf("Fila %d: error creando el artículo %q: %v", p.line, p.req.Name, err))
			continue
		}
		created++
	}

	return &dto.ImportItemsResponse{
		Message: fmt.Sprintf("Se importaron %d artículos", created),
		Created: created,
		Errors:  errs,
	}, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
