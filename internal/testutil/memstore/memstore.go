// Package memstore implementa los repositorios y los TxRunner en memoria para tests.
// Las transacciones trabajan sobre una copia del estado y solo la publican al terminar sin error,
// así que un fallo a mitad de camino no deja rastro. Las restricciones de PostgreSQL
// (FKs, UNIQUE(bill_number)) se reproducen con los mismos errores de dominio.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Operaciones en las que se puede inyectar un fallo.
const (
	OpCreateBill      = "bill.create"
	OpCreateBillItems = "bill.create_items"
	OpDeleteBillItems = "bill.delete_items"
	OpUpdateBillTotal = "bill.update_total"
	OpDeleteBill      = "bill.delete"
	OpDeleteItem      = "item.delete"
	OpListCategories  = "category.list"
	OpItemSales       = "analytics.item_sales"
)

type state struct {
	categories []entity.Category
	items      []entity.Item
	bills      []entity.Bill
	billItems  []entity.BillItem
	nextID     int64
}

func (d *state) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *state) clone() *state {
	return &state{
		categories: append([]entity.Category(nil), d.categories...),
		items:      append([]entity.Item(nil), d.items...),
		bills:      append([]entity.Bill(nil), d.bills...),
		billItems:  append([]entity.BillItem(nil), d.billItems...),
		nextID:     d.nextID,
	}
}

// access ejecuta fn sobre el estado visible: el global (con lock) o la copia de una tx.
type access func(fn func(d *state) error) error

// Store guarda el estado compartido por todos los repositorios.
type Store struct {
	mu       sync.Mutex
	data     *state
	clock    time.Time
	failures map[string]error
	txCount  int
}

// New crea un store vacío con un reloj que avanza un segundo por cada escritura.
func New() *Store {
	return &Store{
		data:     &state{},
		clock:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		failures: make(map[string]error),
	}
}

// Fail hace que la operación op devuelva err hasta que se llame a Recover.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Recover elimina todos los fallos inyectados.
func (s *Store) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

// Commits devuelve la cantidad de transacciones confirmadas.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCount
}

// failure se llama con el lock tomado.
func (s *Store) failure(op string) error {
	return s.failures[op]
}

// tick se llama con el lock tomado.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) direct(fn func(d *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Categories repositorio de categorías fuera de transacción.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{st: s, with: s.direct} }

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{st: s, with: s.direct} }

// Bills repositorio de facturas fuera de transacción.
func (s *Store) Bills() *BillRepo { return &BillRepo{st: s, with: s.direct} }

// Analytics repositorio de analítica.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{st: s, with: s.direct} }

// run serializa las transacciones: toma el lock, trabaja sobre una copia y la publica si fn no falla.
func (s *Store) run(ctx context.Context, fn func(with access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.data.clone()
	with := func(f func(d *state) error) error { return f(tx) }
	if err := fn(with); err != nil {
		return err
	}
	s.data = tx
	s.txCount++
	return nil
}

// RunBilling implementa billing.BillingTxRunner.
func (s *Store) RunBilling(ctx context.Context, fn func(billRepo repository.BillRepository) error) error {
	return s.run(ctx, func(with access) error {
		return fn(&BillRepo{st: s, with: with})
	})
}

// RunCatalog implementa usecase.CatalogTxRunner.
func (s *Store) RunCatalog(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	billRepo repository.BillRepository,
) error) error {
	return s.run(ctx, func(with access) error {
		return fn(&ItemRepo{st: s, with: with}, &BillRepo{st: s, with: with})
	})
}
