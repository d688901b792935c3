package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill representa la cabecera de una venta cerrada.
// TotalAmount siempre es la suma de los subtotales de sus líneas.
type Bill struct {
	ID          int64
	BillNumber  string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// BillWithItems es la factura con sus líneas en detalle.
type BillWithItems struct {
	Bill
	Items []BillItemDetail
}
