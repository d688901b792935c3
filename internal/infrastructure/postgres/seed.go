package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

type seedItem struct {
	name  string
	price string
	image string
}

// sampleCatalog datos de ejemplo para una base vacía.
var sampleCatalog = []struct {
	category string
	items    []seedItem
}{
	{"Health_Basket", []seedItem{
		{"Wireless Mouse", "25.99", "https://via.placeholder.com/200x200?text=Wireless+Mouse"},
		{"USB Keyboard", "35.50", "https://via.placeholder.com/200x200?text=USB+Keyboard"},
		{"HDMI Cable", "12.99", "https://via.placeholder.com/200x200?text=HDMI+Cable"},
		{"USB Flash Drive 32GB", "15.00", "https://via.placeholder.com/200x200?text=USB+Flash+Drive"},
	}},
	{"Aswins", []seedItem{
		{"T-Shirt", "19.99", "https://via.placeholder.com/200x200?text=T-Shirt"},
		{"Jeans", "49.99", "https://via.placeholder.com/200x200?text=Jeans"},
		{"Sneakers", "79.99", "https://via.placeholder.com/200x200?text=Sneakers"},
		{"Jacket", "89.99", "https://via.placeholder.com/200x200?text=Jacket"},
	}},
}

// SeedSampleData carga el catálogo de ejemplo solo si no hay categorías.
// Devuelve true si insertó datos. Todo ocurre en una transacción.
func SeedSampleData(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	seeded := false
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		// Serializa seeds concurrentes de varias réplicas.
		if _, err := tx.Exec(ctx, `LOCK TABLE categories IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock categories: %w", err)
		}
		categories := NewCategoryRepository(tx)
		items := NewItemRepository(tx)

		n, err := categories.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, group := range sampleCatalog {
			c := &entity.Category{Name: group.category}
			if err := categories.Create(ctx, c); err != nil {
				return err
			}
			for _, it := range group.items {
				image := it.image
				item := &entity.Item{
					CategoryID: c.ID,
					Name:       it.name,
					Price:      decimal.RequireFromString(it.price),
					ImageURL:   &image,
				}
				if err := items.Create(ctx, item); err != nil {
					return err
				}
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	return seeded, nil
}
