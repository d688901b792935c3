package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemSelect = `
	SELECT i.id, i.category_id, i.name, i.price, i.image_url, i.created_at, c.name
	FROM items i
	JOIN categories c ON c.id = i.category_id`

func scanItem(row pgx.Row) (entity.ItemWithCategory, error) {
	var it entity.ItemWithCategory
	err := row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Price, &it.ImageURL, &it.CreatedAt, &it.CategoryName)
	return it, err
}

// Create persiste el artículo. Una categoría inexistente se reporta como entrada inválida.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	const query = `
		INSERT INTO items (category_id, name, price, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, item.CategoryID, item.Name, item.Price, item.ImageURL).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría %d no existe", domain.ErrInvalidInput, item.CategoryID)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene el artículo con el nombre de su categoría.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.ItemWithCategory, error) {
	it, err := scanItem(r.q.QueryRow(ctx, itemSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List lista artículos por nombre de categoría y nombre; filtra si categoryID no es nil.
func (r *ItemRepo) List(ctx context.Context, categoryID *int64) ([]entity.ItemWithCategory, error) {
	query := itemSelect + `
	WHERE ($1::BIGINT IS NULL OR i.category_id = $1)
	ORDER BY c.name COLLATE "C", i.name COLLATE "C", i.id`
	rows, err := r.q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list := make([]entity.ItemWithCategory, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables del artículo.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) (bool, error) {
	const query = `
		UPDATE items
		SET category_id = $2, name = $3, price = $4, image_url = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, item.ID, item.CategoryID, item.Name, item.Price, item.ImageURL)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: la categoría %d no existe", domain.ErrInvalidInput, item.CategoryID)
		}
		return false, fmt.Errorf("update item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// LockByID toma FOR UPDATE sobre el artículo; las inserciones de líneas que lo referencian esperan.
func (r *ItemRepo) LockByID(ctx context.Context, id int64) (bool, error) {
	var got int64
	err := r.q.QueryRow(ctx, `SELECT id FROM items WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock item: %w", err)
	}
	return true, nil
}

// Delete borra el artículo. Si alguna línea de factura lo referencia la FK lo impide.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete item: %w", domain.ErrReferenced)
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
