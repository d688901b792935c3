package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillLineRequest línea de factura enviada por el cliente.
// Subtotal es opcional: el servidor lo recalcula y rechaza uno que no coincida.
type BillLineRequest struct {
	ItemID    int64            `json:"item_id" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
}

// BillRequest entrada para crear o reemplazar una factura.
type BillRequest struct {
	Items []BillLineRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateBillResponse salida de la creación de una factura.
type CreateBillResponse struct {
	BillID      int64           `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// BillResponse cabecera de una factura.
type BillResponse struct {
	ID          int64           `json:"id"`
	BillNumber  string          `json:"bill_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BillLineResponse línea de factura con el nombre y precio actual del artículo.
type BillLineResponse struct {
	ID           int64           `json:"id"`
	BillID       int64           `json:"bill_id"`
	ItemID       int64           `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// BillDetailResponse factura completa con sus líneas.
type BillDetailResponse struct {
	BillResponse
	Items []BillLineResponse `json:"items"`
}
