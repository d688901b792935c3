package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/billing"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción con repos de catálogo y facturación.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		billRepo repository.BillRepository,
	) error) error
}

// CatalogUseCase casos de uso de categorías y artículos.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	txRunner     CatalogTxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	txRunner CatalogTxRunner,
) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, itemRepo: itemRepo, txRunner: txRunner}
}

// ListCategories devuelve las categorías ordenadas por nombre.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, toCategoryResponse(&list[i]))
	}
	return out, nil
}

// CreateCategory crea una categoría. El nombre no necesita ser único.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	category := &entity.Category{Name: name}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// ListItems lista el catálogo, opcionalmente filtrado por categoría.
// Una categoría inexistente produce una lista vacía.
func (uc *CatalogUseCase) ListItems(ctx context.Context, categoryID *int64) ([]dto.ItemResponse, error) {
	list, err := uc.itemRepo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for i := range list {
		out = append(out, toItemResponse(&list[i]))
	}
	return out, nil
}

// CreateItem crea un artículo. La categoría debe existir.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := itemFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return uc.reload(ctx, item.ID)
}

// UpdateItem reemplaza todos los campos del artículo.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, id int64, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := itemFromRequest(in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	found, err := uc.itemRepo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return uc.reload(ctx, id)
}

// DeleteItem borra un artículo solo si ninguna línea de factura lo usa.
// Bloqueo, conteo y borrado ocurren en la misma transacción.
func (uc *CatalogUseCase) DeleteItem(ctx context.Context, id int64) error {
	return uc.txRunner.RunCatalog(ctx, func(itemRepo repository.ItemRepository, billRepo repository.BillRepository) error {
		found, err := itemRepo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		refs, err := billRepo.CountItemReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &domain.ReferencedError{ItemID: id, Count: refs}
		}
		return itemRepo.Delete(ctx, id)
	})
}

// CategoryIndex devuelve el mapa nombre de categoría -> ID usado por la importación.
// Con nombres repetidos gana la primera categoría según el orden del listado.
func (uc *CatalogUseCase) CategoryIndex(ctx context.Context, fold func(string) string) (map[string]int64, error) {
	list, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int64, len(list))
	for _, c := range list {
		key := fold(c.Name)
		if _, ok := index[key]; !ok {
			index[key] = c.ID
		}
	}
	return index, nil
}

func (uc *CatalogUseCase) reload(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := toItemResponse(item)
	return &out, nil
}

func itemFromRequest(in dto.ItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case in.CategoryID <= 0:
		return nil, fmt.Errorf("%w: category_id es requerido", domain.ErrInvalidInput)
	case name == "":
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	case in.Price == nil:
		return nil, fmt.Errorf("%w: price es requerido", domain.ErrInvalidInput)
	case !billing.AmountInRange(*in.Price):
		return nil, fmt.Errorf("%w: price supera el máximo permitido", domain.ErrInvalidInput)
	}
	return &entity.Item{
		CategoryID: in.CategoryID,
		Name:       name,
		Price:      *in.Price,
		ImageURL:   normalizeImageURL(in.ImageURL),
	}, nil
}

// normalizeImageURL trata "" y "None" como ausencia de imagen.
func normalizeImageURL(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || v == "None" {
		return nil
	}
	return &v
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toItemResponse(i *entity.ItemWithCategory) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		CategoryName: i.CategoryName,
		Name:         i.Name,
		Price:        i.Price,
		ImageURL:     i.ImageURL,
		CreatedAt:    i.CreatedAt,
	}
}
