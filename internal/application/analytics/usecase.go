// Package analytics contiene los casos de uso de reportes de ventas:
// ingreso total, ventas por artículo, ventas por categoría y el resumen del tablero.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const summaryTopItems = 5 // número de artículos en el widget del resumen

// UseCase calcula la analítica siempre desde la base de datos (sin caché).
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// TotalRevenue suma de total_amount de todas las facturas; cero si no hay ninguna.
func (uc *UseCase) TotalRevenue(ctx context.Context) (*dto.RevenueResponse, error) {
	total, err := uc.analyticsRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.TotalRevenue: %w", err)
	}
	return &dto.RevenueResponse{TotalRevenue: total}, nil
}

// ItemAnalytics una fila por artículo, incluidos los que nunca se vendieron.
func (uc *UseCase) ItemAnalytics(ctx context.Context) ([]dto.ItemAnalyticsDTO, error) {
	rows, err := uc.analyticsRepo.ItemSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.ItemAnalytics: %w", err)
	}
	return toItemAnalytics(rows), nil
}

// CategoryAnalytics una fila por categoría, incluidas las que no tienen ventas.
func (uc *UseCase) CategoryAnalytics(ctx context.Context) ([]dto.CategoryAnalyticsDTO, error) {
	rows, err := uc.analyticsRepo.CategorySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.CategoryAnalytics: %w", err)
	}
	return toCategoryAnalytics(rows), nil
}

// Summary construye el resumen del tablero.
//
// Cuatro consultas en paralelo:
//  1. TotalRevenue   → TotalRevenue
//  2. BillCount      → BillCount
//  3. ItemSales      → TopItems (primeros 5)
//  4. CategorySales  → Categories
func (uc *UseCase) Summary(ctx context.Context) (*dto.AnalyticsSummaryDTO, error) {
	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type revenueResult struct {
		total decimal.Decimal
		err   error
	}
	type countResult struct {
		count int64
		err   error
	}
	type itemsResult struct {
		rows []repository.ItemSales
		err  error
	}
	type categoriesResult struct {
		rows []repository.CategorySales
		err  error
	}

	revenueCh := make(chan revenueResult, 1)
	countCh := make(chan countResult, 1)
	itemsCh := make(chan itemsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)

	go func() {
		total, err := uc.analyticsRepo.TotalRevenue(ctx)
		revenueCh <- revenueResult{total, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.BillCount(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ItemSales(ctx)
		itemsCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.CategorySales(ctx)
		categoriesCh <- categoriesResult{rows, err}
	}()

	revenue := <-revenueCh
	count := <-countCh
	items := <-itemsCh
	categories := <-categoriesCh

	if revenue.err != nil {
		return nil, fmt.Errorf("analytics.Summary: ingreso total: %w", revenue.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("analytics.Summary: cantidad de facturas: %w", count.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("analytics.Summary: ventas por artículo: %w", items.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("analytics.Summary: ventas por categoría: %w", categories.err)
	}

	top := items.rows
	if len(top) > summaryTopItems {
		top = top[:summaryTopItems]
	}

	return &dto.AnalyticsSummaryDTO{
		TotalRevenue: revenue.total,
		BillCount:    count.count,
		TopItems:     toItemAnalytics(top),
		Categories:   toCategoryAnalytics(categories.rows),
	}, nil
}

func toItemAnalytics(rows []repository.ItemSales) []dto.ItemAnalyticsDTO {
	out := make([]dto.ItemAnalyticsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ItemAnalyticsDTO{
			ID:                r.ItemID,
			Name:              r.Name,
			Price:             r.Price,
			CategoryName:      r.CategoryName,
			TotalQuantitySold: r.TotalQuantitySold,
			TotalRevenue:      r.TotalRevenue,
		})
	}
	return out
}

func toCategoryAnalytics(rows []repository.CategorySales) []dto.CategoryAnalyticsDTO {
	out := make([]dto.CategoryAnalyticsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryAnalyticsDTO{
			ID:             r.CategoryID,
			Name:           r.Name,
			TotalItemsSold: r.TotalItemsSold,
			TotalRevenue:   r.TotalRevenue,
		})
	}
	return out
}
