// Package spreadsheet adapta archivos .xlsx al puerto de importación de artículos.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pos-api/internal/application/ports"
)

var _ ports.SpreadsheetReader = (*ExcelizeReader)(nil)

// ExcelizeReader lee la hoja activa de un libro .xlsx.
type ExcelizeReader struct{}

// NewExcelizeReader construye el lector.
func NewExcelizeReader() *ExcelizeReader { return &ExcelizeReader{} }

// ReadRows devuelve las filas con el valor crudo de cada celda, sin formato de número
// (un precio 25.5 con formato "$#,##0.00" llega como "25.5").
func (r *ExcelizeReader) ReadRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: abrir libro: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer hoja %q: %w", sheet, err)
	}
	return rows, nil
}
