package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrReferenced   = errors.New("recurso referenciado por facturas")
)

// ReferencedError indica que un artículo no puede borrarse porque hay líneas de factura que lo usan.
type ReferencedError struct {
	ItemID int64
	Count  int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("no se puede eliminar el artículo %d: está usado en %d línea(s) de factura", e.ItemID, e.Count)
}

// Is permite errors.Is(err, ErrReferenced).
func (e *ReferencedError) Is(target error) bool {
	return target == ErrReferenced
}
