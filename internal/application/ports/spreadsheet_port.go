package ports

import "io"

// SpreadsheetReader define el puerto de entrada de hojas de cálculo para la importación de artículos.
// Cualquier adaptador (excelize, CSV, mock) debe implementar esta interfaz.
type SpreadsheetReader interface {
	// ReadRows devuelve todas las filas de la hoja activa, incluida la cabecera.
	// Las celdas vacías llegan como "" y las filas pueden tener longitudes distintas.
	ReadRows(r io.Reader) ([][]string, error)
}
