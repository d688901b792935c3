package entity

import "github.com/shopspring/decimal"

// BillItem representa una línea de factura.
// UnitPrice es una copia del precio al momento de la venta, no una referencia viva a items.price.
type BillItem struct {
	ID        int64
	BillID    int64
	ItemID    int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// BillItemDetail es una línea con el nombre y el precio actual del artículo.
type BillItemDetail struct {
	BillItem
	ItemName     string
	CurrentPrice decimal.Decimal
}
