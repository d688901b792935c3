package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/billing"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// maxBillNumberAttempts intentos de crear la factura ante un bill_number repetido.
const maxBillNumberAttempts = 3

// ErrBillNumberExhausted se devuelve si todos los intentos chocaron con un número existente.
var ErrBillNumberExhausted = errors.New("no se pudo generar un número de factura único")

// BillUseCase casos de uso de facturas: alta, consulta, reemplazo de líneas y borrado.
// Cada escritura ocurre en una única transacción; el total siempre es la suma de los subtotales.
type BillUseCase struct {
	txRunner  BillingTxRunner
	billRepo  repository.BillRepository
	now       func() time.Time
	newNumber func(time.Time) string
}

// Option configura un BillUseCase.
type Option func(*BillUseCase)

// WithClock reemplaza el reloj usado para numerar facturas.
func WithClock(now func() time.Time) Option {
	return func(uc *BillUseCase) { uc.now = now }
}

// WithNumberGenerator reemplaza el generador de bill_number.
func WithNumberGenerator(gen func(time.Time) string) Option {
	return func(uc *BillUseCase) { uc.newNumber = gen }
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(txRunner BillingTxRunner, billRepo repository.BillRepository, opts ...Option) *BillUseCase {
	uc := &BillUseCase{
		txRunner:  txRunner,
		billRepo:  billRepo,
		now:       time.Now,
		newNumber: billing.NewBillNumber,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateBill valida las líneas, recalcula subtotales y total, y persiste cabecera y líneas
// en una sola transacción. Si el número generado ya existe se reintenta con uno nuevo.
func (uc *BillUseCase) CreateBill(ctx context.Context, in dto.BillRequest) (*dto.CreateBillResponse, error) {
	lines, total, err := buildLines(in)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxBillNumberAttempts; attempt++ {
		bill := &entity.Bill{
			BillNumber:  uc.newNumber(uc.now()),
			TotalAmount: total,
		}
		err := uc.txRunner.RunBilling(ctx, func(billRepo repository.BillRepository) error {
			if err := billRepo.Create(ctx, bill); err != nil {
				return err
			}
			return billRepo.CreateItems(ctx, bill.ID, lines)
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &dto.CreateBillResponse{
			BillID:      bill.ID,
			BillNumber:  bill.BillNumber,
			TotalAmount: bill.TotalAmount,
		}, nil
	}
	return nil, ErrBillNumberExhausted
}

// ListBills devuelve las facturas, la más reciente primero.
func (uc *BillUseCase) ListBills(ctx context.Context) ([]dto.BillResponse, error) {
	bills, err := uc.billRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		out = append(out, toBillResponse(&bills[i]))
	}
	return out, nil
}

// GetBill devuelve la factura con sus líneas o domain.ErrNotFound.
func (uc *BillUseCase) GetBill(ctx context.Context, id int64) (*dto.BillDetailResponse, error) {
	bill, err := uc.GetBillWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBillDetailResponse(bill), nil
}

// GetBillWithItems carga la entidad completa (usado también por el recibo).
func (uc *BillUseCase) GetBillWithItems(ctx context.Context, id int64) (*entity.BillWithItems, error) {
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.billRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.BillWithItems{Bill: *bill, Items: items}, nil
}

// UpdateBill reemplaza el conjunto completo de líneas y recalcula el total.
// Bloquea la factura, actualiza el total, borra las líneas viejas e inserta las nuevas en una transacción.
func (uc *BillUseCase) UpdateBill(ctx context.Context, id int64, in dto.BillRequest) (*dto.BillDetailResponse, error) {
	lines, total, err := buildLines(in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunBilling(ctx, func(billRepo repository.BillRepository) error {
		found, err := billRepo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		if err := billRepo.UpdateTotal(ctx, id, total); err != nil {
			return err
		}
		if err := billRepo.DeleteItems(ctx, id); err != nil {
			return err
		}
		return billRepo.CreateItems(ctx, id, lines)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetBill(ctx, id)
}

// DeleteBill borra la factura y sus líneas.
func (uc *BillUseCase) DeleteBill(ctx context.Context, id int64) error {
	return uc.txRunner.RunBilling(ctx, func(billRepo repository.BillRepository) error {
		if err := billRepo.DeleteItems(ctx, id); err != nil {
			return err
		}
		found, err := billRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ClearAllBills borra todas las líneas y todas las facturas. El catálogo no se toca.
func (uc *BillUseCase) ClearAllBills(ctx context.Context) error {
	return uc.txRunner.RunBilling(ctx, func(billRepo repository.BillRepository) error {
		if err := billRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear bills: %w", err)
		}
		return nil
	})
}

func buildLines(in dto.BillRequest) ([]entity.BillItem, decimal.Decimal, error) {
	inputs := make([]billing.LineInput, 0, len(in.Items))
	for i, it := range in.Items {
		if it.UnitPrice == nil {
			return nil, decimal.Zero, fmt.Errorf("%w: línea %d: unit_price es requerido", domain.ErrInvalidInput, i+1)
		}
		inputs = append(inputs, billing.LineInput{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: *it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return billing.BuildLines(inputs)
}

func toBillResponse(b *entity.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:          b.ID,
		BillNumber:  b.BillNumber,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
	}
}

func toBillDetailResponse(b *entity.BillWithItems) *dto.BillDetailResponse {
	out := &dto.BillDetailResponse{
		BillResponse: toBillResponse(&b.Bill),
		Items:        make([]dto.BillLineResponse, 0, len(b.Items)),
	}
	for _, it := range b.Items {
		out.Items = append(out.Items, dto.BillLineResponse{
			ID:           it.ID,
			BillID:       it.BillID,
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
			CurrentPrice: it.CurrentPrice,
		})
	}
	return out
}
