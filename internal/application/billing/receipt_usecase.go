package billing

import (
	"context"
	"fmt"
)

// ReceiptUseCase genera el recibo en PDF de una factura.
type ReceiptUseCase struct {
	bills     *BillUseCase
	generator ReceiptGenerator
	store     StoreInfo
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(bills *BillUseCase, generator ReceiptGenerator, store StoreInfo) *ReceiptUseCase {
	return &ReceiptUseCase{bills: bills, generator: generator, store: store}
}

// GenerateReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// Devuelve domain.ErrNotFound si la factura no existe.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, billID int64) (pdfBytes []byte, filename string, err error) {
	bill, err := uc.bills.GetBillWithItems(ctx, billID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, uc.store, bill)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", bill.BillNumber), nil
}
