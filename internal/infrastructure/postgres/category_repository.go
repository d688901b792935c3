package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create inserta la categoría y completa ID y CreatedAt.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const query = `INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// List devuelve todas las categorías ordenadas por nombre (orden binario, independiente de la collation de la base).
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	const query = `SELECT id, name, created_at FROM categories ORDER BY name COLLATE "C", id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count número de categorías (usado por el seed).
func (r *CategoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}
