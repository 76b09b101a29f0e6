package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// Catalog consultas de solo lectura sobre productos, terceros, bodegas y stock.
// Los ...ByID devuelven nil, nil si el registro no existe (referencias colgantes).
type Catalog interface {
	ProductByID(id int64) (*entity.Product, error)
	CustomerByID(id int64) (*entity.Customer, error)
	SupplierByID(id int64) (*entity.Supplier, error)
	// StockOf cantidad en bodega; 0 si no hay registro.
	StockOf(productID, warehouseID int64) (decimal.Decimal, error)
	ListProducts() ([]entity.Product, error)
	ListCustomers() ([]entity.Customer, error)
	ListSuppliers() ([]entity.Supplier, error)
	ListWarehouses() ([]entity.Warehouse, error)
}

// CatalogWriter carga del catálogo (seed). El flujo de facturación nunca escribe aquí.
type CatalogWriter interface {
	UpsertProduct(p *entity.Product) error
	UpsertCustomer(c *entity.Customer) error
	UpsertSupplier(s *entity.Supplier) error
	UpsertWarehouse(w *entity.Warehouse) error
	UpsertStock(s *entity.Stock) error
}
