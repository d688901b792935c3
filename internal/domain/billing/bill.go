// Package billing contiene las reglas puras de una factura de venta:
// numeración, cálculo de subtotales y validación de líneas.
package billing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// BillNumberPrefix prefijo de todos los números de factura.
const BillNumberPrefix = "BILL"

// moneyPlaces decimales de las columnas NUMERIC(12,2).
const moneyPlaces = 2

// MaxQuantity límite de la columna quantity (INTEGER).
const MaxQuantity = math.MaxInt32

// MaxAmount cota exclusiva de un importe en NUMERIC(12,2): 10^10.
var MaxAmount = decimal.New(1, 10)

// AmountInRange indica si el importe cabe en una columna NUMERIC(12,2).
func AmountInRange(d decimal.Decimal) bool {
	return d.Round(moneyPlaces).Abs().LessThan(MaxAmount)
}

// LineInput es una línea tal como llega del cliente.
// Subtotal es opcional; si viene, debe coincidir con Quantity * UnitPrice.
type LineInput struct {
	ItemID    int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  *decimal.Decimal
}

// NewBillNumber genera BILL-<YYYYMMDD>-<8 caracteres hex en mayúscula> a partir de un UUID aleatorio.
func NewBillNumber(now time.Time) string {
	return FormatBillNumber(now, uuid.New().String()[:8])
}

// FormatBillNumber arma el número con la fecha de now y el sufijo dado (en mayúsculas).
func FormatBillNumber(now time.Time, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", BillNumberPrefix, now.Format("20060102"), strings.ToUpper(suffix))
}

// LineSubtotal = quantity * unitPrice, redondeado a centavos.
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyPlaces)
}

// Total suma los subtotales de las líneas.
func Total(lines []entity.BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// BuildLines valida las líneas recibidas y devuelve las líneas con el subtotal calculado
// en el servidor junto al total de la factura. Todos los errores se devuelven juntos,
// envueltos en domain.ErrInvalidInput.
func BuildLines(in []LineInput) ([]entity.BillItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: la factura debe tener al menos una línea", domain.ErrInvalidInput)
	}

	var errs []error
	lines := make([]entity.BillItem, 0, len(in))
	for i, l := range in {
		n := i + 1
		if l.ItemID <= 0 {
			errs = append(errs, fmt.Errorf("línea %d: item_id inválido", n))
		}
		if l.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("línea %d: la cantidad debe ser mayor a cero", n))
		}
		if l.Quantity > MaxQuantity {
			errs = append(errs, fmt.Errorf("línea %d: la cantidad no puede superar %d", n, MaxQuantity))
		}
		if l.UnitPrice.IsNegative() {
			errs = append(errs, fmt.Errorf("línea %d: el precio unitario no puede ser negativo", n))
		}
		unitPrice := l.UnitPrice.Round(moneyPlaces)
		subtotal := LineSubtotal(l.Quantity, unitPrice)
		if !AmountInRange(unitPrice) || !AmountInRange(subtotal) {
			errs = append(errs, fmt.Errorf("línea %d: el importe supera el máximo permitido", n))
		}
		if l.Subtotal != nil && !l.Subtotal.Round(moneyPlaces).Equal(subtotal) {
			errs = append(errs, fmt.Errorf("línea %d: subtotal %s no coincide con cantidad x precio (%s)",
				n, l.Subtotal.String(), subtotal.StringFixed(moneyPlaces)))
		}
		lines = append(lines, entity.BillItem{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
	}
	if len(errs) > 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	total := Total(lines)
	if !AmountInRange(total) {
		return nil, decimal.Zero, fmt.Errorf("%w: el total %s supera el máximo permitido",
			domain.ErrInvalidInput, total.StringFixed(moneyPlaces))
	}
	return lines, total, nil
}
