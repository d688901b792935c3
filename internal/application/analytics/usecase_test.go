package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/testutil/memstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type seeded struct {
	store *memstore.Store
	bills *billing.BillUseCase
	uc    *analytics.UseCase
	items map[string]int64
}

// seed crea dos categorías con artículos y una categoría vacía.
func seed(t *testing.T) *seeded {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()
	s := &seeded{
		store: st,
		bills: billing.NewBillUseCase(st, st.Bills()),
		uc:    analytics.NewUseCase(st.Analytics()),
		items: map[string]int64{},
	}

	cats := map[string]int64{}
	for _, name := range []string{"Snacks", "Bebidas", "Limpieza"} {
		c := &entity.Category{Name: name}
		require.NoError(t, st.Categories().Create(ctx, c))
		cats[name] = c.ID
	}
	for _, it := range []struct{ cat, name, price string }{
		{"Snacks", "Chips", "2.50"},
		{"Snacks", "Maní", "1.00"},
		{"Bebidas", "Soda", "1.25"},
		{"Bebidas", "Agua", "0.80"},
	} {
		item := &entity.Item{CategoryID: cats[it.cat], Name: it.name, Price: dec(it.price)}
		require.NoError(t, st.Items().Create(ctx, item))
		s.items[it.name] = item.ID
	}
	return s
}

func (s *seeded) sell(t *testing.T, lines ...dto.BillLineRequest) {
	t.Helper()
	_, err := s.bills.CreateBill(context.Background(), dto.BillRequest{Items: lines})
	require.NoError(t, err)
}

func (s *seeded) line(name string, qty int, price string) dto.BillLineRequest {
	p := dec(price)
	return dto.BillLineRequest{ItemID: s.items[name], Quantity: qty, UnitPrice: &p}
}

func TestTotalRevenue_SinFacturasEsCero(t *testing.T) {
	s := seed(t)
	out, err := s.uc.TotalRevenue(context.Background())
	require.NoError(t, err)
	assert.True(t, out.TotalRevenue.IsZero())
}

func TestTotalRevenue_SumaFacturas(t *testing.T) {
	s := seed(t)
	s.sell(t, s.line("Chips", 3, "2.50"))
	s.sell(t, s.line("Soda", 2, "1.25"), s.line("Agua", 1, "0.80"))

	out, err := s.uc.TotalRevenue(context.Background())
	require.NoError(t, err)
	assert.True(t, dec("10.80").Equal(out.TotalRevenue), "got %s", out.TotalRevenue)
}

func TestItemAnalytics_IncluyeArticulosSinVentas(t *testing.T) {
	s := seed(t)
	s.sell(t, s.line("Soda", 4, "1.25"))
	s.sell(t, s.line("Chips", 1, "2.50"), s.line("Chips", 1, "2.50"))

	rows, err := s.uc.ItemAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4, "cada artículo aparece exactamente una vez")

	// revenue desc; empates por categoría y luego nombre
	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Name)
	}
	assert.Equal(t, []string{"Soda", "Chips", "Agua", "Maní"}, got)

	assert.Equal(t, int64(4), rows[0].TotalQuantitySold)
	assert.True(t, dec("5.00").Equal(rows[0].TotalRevenue))
	assert.Equal(t, int64(2), rows[1].TotalQuantitySold)
	for _, r := range rows[2:] {
		assert.Zero(t, r.TotalQuantitySold)
		assert.True(t, r.TotalRevenue.IsZero())
	}
	assert.Equal(t, "Bebidas", rows[2].CategoryName)
}

func TestCategoryAnalytics_IncluyeCategoriasVacias(t *testing.T) {
	s := seed(t)
	s.sell(t, s.line("Chips", 2, "2.50"), s.line("Maní", 3, "1.00"))
	s.sell(t, s.line("Agua", 1, "0.80"))

	rows, err := s.uc.CategoryAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Snacks", rows[0].Name)
	assert.Equal(t, int64(5), rows[0].TotalItemsSold)
	assert.True(t, dec("8.00").Equal(rows[0].TotalRevenue))

	assert.Equal(t, "Bebidas", rows[1].Name)
	assert.Equal(t, "Limpieza", rows[2].Name)
	assert.Zero(t, rows[2].TotalItemsSold)
	assert.True(t, rows[2].TotalRevenue.IsZero())
}

func TestCategoryAnalytics_EmpateOrdenaPorNombre(t *testing.T) {
	s := seed(t)
	rows, err := s.uc.CategoryAnalytics(context.Background())
	require.NoError(t, err)

	names := []string{rows[0].Name, rows[1].Name, rows[2].Name}
	assert.Equal(t, []string{"Bebidas", "Limpieza", "Snacks"}, names)
}

func TestAnalytics_ReflejaCambiosSinCache(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	s.sell(t, s.line("Chips", 1, "2.50"))

	first, err := s.uc.TotalRevenue(ctx)
	require.NoError(t, err)
	require.NoError(t, s.bills.ClearAllBills(ctx))
	second, err := s.uc.TotalRevenue(ctx)
	require.NoError(t, err)

	assert.True(t, dec("2.50").Equal(first.TotalRevenue))
	assert.True(t, second.TotalRevenue.IsZero())
}

func TestSummary(t *testing.T) {
	s := seed(t)
	s.sell(t, s.line("Chips", 2, "2.50"))
	s.sell(t, s.line("Soda", 1, "1.25"))

	out, err := s.uc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, dec("6.25").Equal(out.TotalRevenue))
	assert.Equal(t, int64(2), out.BillCount)
	assert.Len(t, out.TopItems, 4)
	assert.Equal(t, "Chips", out.TopItems[0].Name)
	assert.Len(t, out.Categories, 3)
}

func TestSummary_PropagaError(t *testing.T) {
	s := seed(t)
	s.store.Fail(memstore.OpItemSales, errors.New("consulta cancelada"))

	_, err := s.uc.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ventas por artículo")
}
