package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoPersonSelected  = errors.New("no se ha seleccionado cliente ni proveedor")
	ErrNoValidItems      = errors.New("el documento no tiene ítems válidos")
)

// FallbackLabel etiqueta para referencias a registros eliminados (producto, tercero).
const FallbackLabel = "registro no encontrado"

// Códigos de validación expuestos al usuario.
const (
	CodeNoPersonSelected  = "NO_PERSON_SELECTED"
	CodeNoValidItems      = "NO_VALID_ITEMS"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
)

// ValidationError error recuperable al finalizar un borrador. El borrador queda intacto.
// Para INSUFFICIENT_STOCK incluye el producto y la cantidad disponible.
type ValidationError struct {
	Code        string
	ProductID   int64
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeInsufficientStock:
		return fmt.Sprintf("stock insuficiente para %q: solicitado %s, disponible %s",
			e.ProductName, e.Requested.String(), e.Available.String())
	case CodeNoPersonSelected:
		return ErrNoPersonSelected.Error()
	case CodeNoValidItems:
		return ErrNoValidItems.Error()
	}
	return "validación fallida: " + e.Code
}

// Is permite errors.Is(err, domain.ErrInsufficientStock) y similares.
func (e *ValidationError) Is(target error) bool {
	switch e.Code {
	case CodeNoPersonSelected:
		return target == ErrNoPersonSelected
	case CodeNoValidItems:
		return target == ErrNoValidItems
	case CodeInsufficientStock:
		return target == ErrInsufficientStock
	}
	return false
}
