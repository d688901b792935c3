package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemRequest entrada para crear o reemplazar un artículo (PUT reemplaza todos los campos).
type ItemRequest struct {
	CategoryID int64            `json:"category_id" validate:"required,gt=0"`
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	ImageURL   *string          `json:"image_url"`
}

// ItemResponse salida de un artículo con el nombre de su categoría.
type ItemResponse struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     *string         `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ImportItemsResponse resultado de la importación de artículos desde Excel.
type ImportItemsResponse struct {
	Message string   `json:"message"`
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}
