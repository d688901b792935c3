package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ItemSales resultado crudo de ventas por artículo.
// Los artículos sin ventas aparecen con cantidad y revenue en cero.
type ItemSales struct {
	ItemID            int64
	Name              string
	Price             decimal.Decimal
	CategoryName      string
	TotalQuantitySold int64
	TotalRevenue      decimal.Decimal
}

// CategorySales resultado crudo de ventas por categoría.
type CategorySales struct {
	CategoryID     int64
	Name           string
	TotalItemsSold int64
	TotalRevenue   decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para analítica de ventas.
// Las implementaciones son read-only y siempre leen datos frescos.
type AnalyticsRepository interface {
	// TotalRevenue suma total_amount de todas las facturas (cero si no hay).
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// BillCount número de facturas registradas.
	BillCount(ctx context.Context) (int64, error)

	// ItemSales devuelve todos los artículos, ordenados por revenue desc,
	// nombre de categoría y nombre de artículo.
	ItemSales(ctx context.Context) ([]ItemSales, error)

	// CategorySales devuelve todas las categorías, ordenadas por revenue desc y nombre.
	CategorySales(ctx context.Context) ([]CategorySales, error)
}
