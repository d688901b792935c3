package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.ItemRepository      = (*ItemRepo)(nil)
	_ repository.BillRepository      = (*BillRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// ── Categories ────────────────────────────────────────────────────────────────

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	st   *Store
	with access
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.with(func(d *state) error {
		c.ID = d.id()
		c.CreatedAt = r.st.tick()
		d.categories = append(d.categories, *c)
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.with(func(d *state) error {
		if err := r.st.failure(OpListCategories); err != nil {
			return err
		}
		out = append([]entity.Category(nil), d.categories...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *CategoryRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.with(func(d *state) error {
		n = len(d.categories)
		return nil
	})
	return n, err
}

// ── Items ─────────────────────────────────────────────────────────────────────

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	st   *Store
	with access
}

func (d *state) category(id int64) (entity.Category, bool) {
	for _, c := range d.categories {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Category{}, false
}

func (d *state) itemIndex(id int64) int {
	for i, it := range d.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (d *state) withCategory(it entity.Item) entity.ItemWithCategory {
	c, _ := d.category(it.CategoryID)
	return entity.ItemWithCategory{Item: it, CategoryName: c.Name}
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.with(func(d *state) error {
		if _, ok := d.category(item.CategoryID); !ok {
			return fmt.Errorf("%w: la categoría %d no existe", domain.ErrInvalidInput, item.CategoryID)
		}
		item.ID = d.id()
		item.CreatedAt = r.st.tick()
		d.items = append(d.items, *item)
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.ItemWithCategory, error) {
	var out *entity.ItemWithCategory
	err := r.with(func(d *state) error {
		if i := d.itemIndex(id); i >= 0 {
			it := d.withCategory(d.items[i])
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *ItemRepo) List(_ context.Context, categoryID *int64) ([]entity.ItemWithCategory, error) {
	var out []entity.ItemWithCategory
	err := r.with(func(d *state) error {
		for _, it := range d.items {
			if categoryID != nil && it.CategoryID != *categoryID {
				continue
			}
			out = append(out, d.withCategory(it))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, err
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) (bool, error) {
	found := false
	err := r.with(func(d *state) error {
		i := d.itemIndex(item.ID)
		if i < 0 {
			return nil
		}
		found = true
		if _, ok := d.category(item.CategoryID); !ok {
			return fmt.Errorf("%w: la categoría %d no existe", domain.ErrInvalidInput, item.CategoryID)
		}
		cur := &d.items[i]
		cur.CategoryID = item.CategoryID
		cur.Name = item.Name
		cur.Price = item.Price
		cur.ImageURL = item.ImageURL
		item.CreatedAt = cur.CreatedAt
		return nil
	})
	return found, err
}

func (r *ItemRepo) LockByID(_ context.Context, id int64) (bool, error) {
	found := false
	err := r.with(func(d *state) error {
		found = d.itemIndex(id) >= 0
		return nil
	})
	return found, err
}

func (r *ItemRepo) Delete(_ context.Context, id int64) error {
	return r.with(func(d *state) error {
		if err := r.st.failure(OpDeleteItem); err != nil {
			return err
		}
		for _, bi := range d.billItems {
			if bi.ItemID == id {
				return fmt.Errorf("delete item: %w", domain.ErrReferenced)
			}
		}
		if i := d.itemIndex(id); i >= 0 {
			d.items = append(d.items[:i], d.items[i+1:]...)
		}
		return nil
	})
}

// ── Bills ─────────────────────────────────────────────────────────────────────

// BillRepo implementación en memoria de BillRepository.
type BillRepo struct {
	st   *Store
	with access
}

func (d *state) billIndex(id int64) int {
	for i, b := range d.bills {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (r *BillRepo) Create(_ context.Context, bill *entity.Bill) error {
	return r.with(func(d *state) error {
		if err := r.st.failure(OpCreateBill); err != nil {
			return err
		}
		for _, b := range d.bills {
			if b.BillNumber == bill.BillNumber {
				return fmt.Errorf("bill number already exists: %w", domain.ErrDuplicate)
			}
		}
		bill.ID = d.id()
		bill.CreatedAt = r.st.tick()
		d.bills = append(d.bills, *bill)
		return nil
	})
}

func (r *BillRepo) CreateItems(_ context.Context, billID int64, items []entity.BillItem) error {
	return r.with(func(d *state) error {
		if d.billIndex(billID) < 0 {
			return fmt.Errorf("%w: la factura %d no existe", domain.ErrInvalidInput, billID)
		}
		for i := range items {
			if err := r.st.failure(OpCreateBillItems); err != nil && i > 0 {
				// falla después de insertar al menos una línea
				return err
			}
			if d.itemIndex(items[i].ItemID) < 0 {
				return fmt.Errorf("%w: el artículo %d no existe", domain.ErrInvalidInput, items[i].ItemID)
			}
			items[i].ID = d.id()
			items[i].BillID = billID
			d.billItems = append(d.billItems, items[i])
		}
		return r.st.failure(OpCreateBillItems)
	})
}

func (r *BillRepo) GetByID(_ context.Context, id int64) (*entity.Bill, error) {
	var out *entity.Bill
	err := r.with(func(d *state) error {
		if i := d.billIndex(id); i >= 0 {
			b := d.bills[i]
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BillRepo) ListItems(_ context.Context, billID int64) ([]entity.BillItemDetail, error) {
	out := make([]entity.BillItemDetail, 0)
	err := r.with(func(d *state) error {
		for _, bi := range d.billItems {
			if bi.BillID != billID {
				continue
			}
			it := d.items[d.itemIndex(bi.ItemID)]
			out = append(out, entity.BillItemDetail{BillItem: bi, ItemName: it.Name, CurrentPrice: it.Price})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *BillRepo) List(_ context.Context) ([]entity.Bill, error) {
	var out []entity.Bill
	err := r.with(func(d *state) error {
		out = append([]entity.Bill(nil), d.bills...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (r *BillRepo) LockByID(_ context.Context, id int64) (bool, error) {
	found := false
	err := r.with(func(d *state) error {
		found = d.billIndex(id) >= 0
		return nil
	})
	return found, err
}

func (r *BillRepo) UpdateTotal(_ context.Context, id int64, total decimal.Decimal) error {
	return r.with(func(d *state) error {
		if err := r.st.failure(OpUpdateBillTotal); err != nil {
			return err
		}
		if i := d.billIndex(id); i >= 0 {
			d.bills[i].TotalAmount = total
		}
		return nil
	})
}

func (r *BillRepo) DeleteItems(_ context.Context, billID int64) error {
	return r.with(func(d *state) error {
		if err := r.st.failure(OpDeleteBillItems); err != nil {
			return err
		}
		kept := d.billItems[:0:0]
		for _, bi := range d.billItems {
			if bi.BillID != billID {
				kept = append(kept, bi)
			}
		}
		d.billItems = kept
		return nil
	})
}

func (r *BillRepo) Delete(_ context.Context, id int64) (bool, error) {
	found := false
	err := r.with(func(d *state) error {
		if err := r.st.failure(OpDeleteBill); err != nil {
			return err
		}
		i := d.billIndex(id)
		if i < 0 {
			return nil
		}
		for _, bi := range d.billItems {
			if bi.BillID == id {
				return fmt.Errorf("delete bill: la factura %d aún tiene líneas", id)
			}
		}
		found = true
		d.bills = append(d.bills[:i], d.bills[i+1:]...)
		return nil
	})
	return found, err
}

func (r *BillRepo) DeleteAll(_ context.Context) error {
	return r.with(func(d *state) error {
		if err := r.st.failure(OpDeleteBillItems); err != nil {
			return err
		}
		d.billItems = nil
		if err := r.st.failure(OpDeleteBill); err != nil {
			return err
		}
		d.bills = nil
		return nil
	})
}

func (r *BillRepo) CountItemReferences(_ context.Context, itemID int64) (int, error) {
	n := 0
	err := r.with(func(d *state) error {
		for _, bi := range d.billItems {
			if bi.ItemID == itemID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// AnalyticsRepo implementación en memoria de AnalyticsRepository.
type AnalyticsRepo struct {
	st   *Store
	with access
}

func (r *AnalyticsRepo) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.with(func(d *state) error {
		for _, b := range d.bills {
			total = total.Add(b.TotalAmount)
		}
		return nil
	})
	return total, err
}

func (r *AnalyticsRepo) BillCount(_ context.Context) (int64, error) {
	var n int64
	err := r.with(func(d *state) error {
		n = int64(len(d.bills))
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) ItemSales(_ context.Context) ([]repository.ItemSales, error) {
	var out []repository.ItemSales
	err := r.with(func(d *state) error {
		if err := r.st.failure(OpItemSales); err != nil {
			return err
		}
		for _, it := range d.items {
			c, _ := d.category(it.CategoryID)
			row := repository.ItemSales{
				ItemID:       it.ID,
				Name:         it.Name,
				Price:        it.Price,
				CategoryName: c.Name,
				TotalRevenue: decimal.Zero,
			}
			for _, bi := range d.billItems {
				if bi.ItemID == it.ID {
					row.TotalQuantitySold += int64(bi.Quantity)
					row.TotalRevenue = row.TotalRevenue.Add(bi.Subtotal)
				}
			}
			out = append(out, row)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := a.TotalRevenue.Cmp(b.TotalRevenue); c != 0 {
			return c > 0
		}
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ItemID < b.ItemID
	})
	return out, err
}

func (r *AnalyticsRepo) CategorySales(_ context.Context) ([]repository.CategorySales, error) {
	var out []repository.CategorySales
	err := r.with(func(d *state) error {
		for _, c := range d.categories {
			row := repository.CategorySales{CategoryID: c.ID, Name: c.Name, TotalRevenue: decimal.Zero}
			for _, it := range d.items {
				if it.CategoryID != c.ID {
					continue
				}
				for _, bi := range d.billItems {
					if bi.ItemID == it.ID {
						row.TotalItemsSold += int64(bi.Quantity)
						row.TotalRevenue = row.TotalRevenue.Add(bi.Subtotal)
					}
				}
			}
			out = append(out, row)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := a.TotalRevenue.Cmp(b.TotalRevenue); c != 0 {
			return c > 0
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.CategoryID < b.CategoryID
	})
	return out, err
}
