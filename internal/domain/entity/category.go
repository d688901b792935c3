package entity

import "time"

// Category agrupa artículos del catálogo. El nombre no es único; nunca se edita ni se borra.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
