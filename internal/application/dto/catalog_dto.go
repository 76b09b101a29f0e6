package dto

import "github.com/shopspring/decimal"

// ProductResponse producto para el selector del formulario.
type ProductResponse struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku,omitempty"`
	Name           string          `json:"name"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WarehouseID    int64           `json:"warehouse_id"`
	AllowDuplicate bool            `json:"allow_duplicate"`
}

// PersonResponse cliente o proveedor.
type PersonResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// SeedResponse conteos de una carga del catálogo.
type SeedResponse struct {
	Products   int `json:"products"`
	Customers  int `json:"customers"`
	Suppliers  int `json:"suppliers"`
	Warehouses int `json:"warehouses"`
}
