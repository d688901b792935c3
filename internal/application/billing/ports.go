package billing

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con el repositorio de facturas.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(billRepo repository.BillRepository) error) error
}

// StoreInfo datos del comercio que aparecen en el recibo.
type StoreInfo struct {
	Name string
}

// ReceiptGenerator genera la representación en PDF de una factura.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, store StoreInfo, bill *entity.BillWithItems) ([]byte, error)
}
