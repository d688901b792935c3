package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para analítica de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TotalRevenue suma total_amount de todas las facturas. COALESCE devuelve 0 sin facturas.
func (r *AnalyticsRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM bills`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.TotalRevenue: %w", err)
	}
	return total, nil
}

// BillCount cantidad de facturas registradas.
func (r *AnalyticsRepo) BillCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bills`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.BillCount: %w", err)
	}
	return n, nil
}

// ItemSales cantidad vendida y revenue por artículo.
// El LEFT JOIN conserva los artículos sin ventas con cero en ambos campos.
func (r *AnalyticsRepo) ItemSales(ctx context.Context) ([]repository.ItemSales, error) {
	const query = `
	SELECT
	    i.id,
	    i.name,
	    i.price,
	    c.name                               AS category_name,
	    COALESCE(SUM(bi.quantity), 0)::BIGINT AS total_quantity_sold,
	    COALESCE(SUM(bi.subtotal), 0)        AS total_revenue
	FROM items i
	JOIN categories c      ON c.id       = i.category_id
	LEFT JOIN bill_items bi ON bi.item_id = i.id
	GROUP BY i.id, i.name, i.price, c.name
	ORDER BY total_revenue DESC, c.name COLLATE "C", i.name COLLATE "C", i.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.ItemSales: %w", err)
	}
	defer rows.Close()

	results := make([]repository.ItemSales, 0)
	for rows.Next() {
		var row repository.ItemSales
		if err := rows.Scan(
			&row.ItemID,
			&row.Name,
			&row.Price,
			&row.CategoryName,
			&row.TotalQuantitySold,
			&row.TotalRevenue,
		); err != nil {
			return nil, fmt.Errorf("analytics.ItemSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CategorySales unidades vendidas y revenue por categoría (categorías -> artículos -> líneas).
func (r *AnalyticsRepo) CategorySales(ctx context.Context) ([]repository.CategorySales, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COALESCE(SUM(bi.quantity), 0)::BIGINT AS total_items_sold,
	    COALESCE(SUM(bi.subtotal), 0)        AS total_revenue
	FROM categories c
	LEFT JOIN items i       ON i.category_id = c.id
	LEFT JOIN bill_items bi ON bi.item_id    = i.id
	GROUP BY c.id, c.name
	ORDER BY total_revenue DESC, c.name COLLATE "C", c.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CategorySales: %w", err)
	}
	defer rows.Close()

	results := make([]repository.CategorySales, 0)
	for rows.Next() {
		var row repository.CategorySales
		if err := rows.Scan(&row.CategoryID, &row.Name, &row.TotalItemsSold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("analytics.CategorySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
