package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	const query = `
		INSERT INTO bills (bill_number, total_amount)
		VALUES ($1, $2)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, bill.BillNumber, bill.TotalAmount).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bill number %s already exists: %w", bill.BillNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateItems inserta todas las líneas en un solo batch y completa sus IDs.
func (r *BillRepo) CreateItems(ctx context.Context, billID int64, items []entity.BillItem) error {
	const query = `
		INSERT INTO bill_items (bill_id, item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, billID, it.ItemID, it.Quantity, it.UnitPrice, it.Subtotal)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	for i := range items {
		if err := br.QueryRow().Scan(&items[i].ID); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: el artículo %d no existe", domain.ErrInvalidInput, items[i].ItemID)
			}
			return fmt.Errorf("insert bill item: %w", err)
		}
		items[i].BillID = billID
	}
	return nil
}

// GetByID obtiene la cabecera de la factura.
func (r *BillRepo) GetByID(ctx context.Context, id int64) (*entity.Bill, error) {
	const query = `SELECT id, bill_number, total_amount, created_at FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.BillNumber, &b.TotalAmount, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// ListItems líneas de la factura con nombre y precio actual del artículo.
func (r *BillRepo) ListItems(ctx context.Context, billID int64) ([]entity.BillItemDetail, error) {
	const query = `
		SELECT bi.id, bi.bill_id, bi.item_id, bi.quantity, bi.unit_price, bi.subtotal,
		       i.name, i.price
		FROM bill_items bi
		JOIN items i ON i.id = bi.item_id
		WHERE bi.bill_id = $1
		ORDER BY bi.id`
	rows, err := r.q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()

	list := make([]entity.BillItemDetail, 0)
	for rows.Next() {
		var d entity.BillItemDetail
		if err := rows.Scan(
			&d.ID, &d.BillID, &d.ItemID, &d.Quantity, &d.UnitPrice, &d.Subtotal,
			&d.ItemName, &d.CurrentPrice,
		); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// List devuelve las facturas, la más reciente primero.
func (r *BillRepo) List(ctx context.Context) ([]entity.Bill, error) {
	const query = `
		SELECT id, bill_number, total_amount, created_at
		FROM bills
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Bill, 0)
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(&b.ID, &b.BillNumber, &b.TotalAmount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// LockByID toma FOR UPDATE sobre la factura para serializar actualizaciones concurrentes.
func (r *BillRepo) LockByID(ctx context.Context, id int64) (bool, error) {
	var got int64
	err := r.q.QueryRow(ctx, `SELECT id FROM bills WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock bill: %w", err)
	}
	return true, nil
}

func (r *BillRepo) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	if _, err := r.q.Exec(ctx, `UPDATE bills SET total_amount = $2 WHERE id = $1`, id, total); err != nil {
		return fmt.Errorf("update bill total: %w", err)
	}
	return nil
}

func (r *BillRepo) DeleteItems(ctx context.Context, billID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, billID); err != nil {
		return fmt.Errorf("delete bill items: %w", err)
	}
	return nil
}

// Delete borra la cabecera; las líneas deben borrarse antes en la misma tx.
func (r *BillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete bill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAll vacía bill_items y luego bills. El catálogo no se toca.
func (r *BillRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bill_items`); err != nil {
		return fmt.Errorf("delete all bill items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM bills`); err != nil {
		return fmt.Errorf("delete all bills: %w", err)
	}
	return nil
}

func (r *BillRepo) CountItemReferences(ctx context.Context, itemID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bill_items WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count item references: %w", err)
	}
	return n, nil
}
