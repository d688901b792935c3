package dto

import "github.com/shopspring/decimal"

// RevenueResponse ingreso total acumulado.
type RevenueResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ItemAnalyticsDTO ventas de un artículo (cero si nunca se vendió).
type ItemAnalyticsDTO struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	CategoryName      string          `json:"category_name"`
	TotalQuantitySold int64           `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

// CategoryAnalyticsDTO ventas agregadas de una categoría.
type CategoryAnalyticsDTO struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	TotalItemsSold int64           `json:"total_items_sold"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// AnalyticsSummaryDTO resumen para el tablero de ventas.
type AnalyticsSummaryDTO struct {
	TotalRevenue decimal.Decimal        `json:"total_revenue"`
	BillCount    int64                  `json:"bill_count"`
	TopItems     []ItemAnalyticsDTO     `json:"top_items"`
	Categories   []CategoryAnalyticsDTO `json:"categories"`
}
