package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para facturas y sus líneas.
// Las operaciones de varias filas se ejecutan dentro de una transacción (ver TxRunner).
type BillRepository interface {
	// Create inserta la cabecera. Un bill_number repetido devuelve domain.ErrDuplicate.
	Create(ctx context.Context, bill *entity.Bill) error
	// CreateItems inserta las líneas de la factura. Un artículo inexistente devuelve domain.ErrInvalidInput.
	CreateItems(ctx context.Context, billID int64, items []entity.BillItem) error
	// GetByID devuelve nil, nil si la factura no existe.
	GetByID(ctx context.Context, id int64) (*entity.Bill, error)
	// ListItems devuelve las líneas en orden de inserción con el nombre y precio actual del artículo.
	ListItems(ctx context.Context, billID int64) ([]entity.BillItemDetail, error)
	// List ordena por fecha de creación descendente.
	List(ctx context.Context) ([]entity.Bill, error)
	// LockByID bloquea la fila (FOR UPDATE) dentro de la transacción en curso.
	LockByID(ctx context.Context, id int64) (bool, error)
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
	DeleteItems(ctx context.Context, billID int64) error
	// Delete devuelve false si la factura no existe.
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) error
	// CountItemReferences cuenta las líneas de factura que usan el artículo.
	CountItemReferences(ctx context.Context, itemID int64) (int, error)
}
