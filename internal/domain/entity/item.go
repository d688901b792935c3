package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo vendible del catálogo.
type Item struct {
	ID         int64
	CategoryID int64
	Name       string
	Price      decimal.Decimal
	ImageURL   *string // nil si el artículo no tiene imagen
	CreatedAt  time.Time
}

// ItemWithCategory es el modelo de lectura del catálogo: artículo más el nombre de su categoría.
type ItemWithCategory struct {
	Item
	CategoryName string
}
