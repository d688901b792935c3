package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	// Create asigna ID y CreatedAt. Una categoría inexistente devuelve domain.ErrInvalidInput.
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve nil, nil si el artículo no existe.
	GetByID(ctx context.Context, id int64) (*entity.ItemWithCategory, error)
	// List ordena por nombre de categoría y luego por nombre de artículo.
	// categoryID nil lista todo el catálogo.
	List(ctx context.Context, categoryID *int64) ([]entity.ItemWithCategory, error)
	// Update reemplaza categoría, nombre, precio e imagen. Devuelve false si el artículo no existe.
	Update(ctx context.Context, item *entity.Item) (bool, error)
	// LockByID bloquea la fila (FOR UPDATE) dentro de la transacción en curso.
	LockByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
