package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (solo lectura para facturación).
// WarehouseID es la bodega por defecto de la que sale el producto al venderse.
type Product struct {
	ID             int64
	SKU            string
	Name           string
	RetailPrice    decimal.Decimal // precio de venta
	WarehouseID    int64
	AllowDuplicate bool // permite varias filas del mismo producto en un documento
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
