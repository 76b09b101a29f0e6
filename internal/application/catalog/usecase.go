// Package catalog expone el catálogo (productos, terceros, bodegas) de solo lectura
// para los formularios, y la carga inicial desde una fuente externa.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// Snapshot catálogo completo traído de una fuente.
type Snapshot struct {
	Products   []entity.Product
	Customers  []entity.Customer
	Suppliers  []entity.Supplier
	Warehouses []entity.Warehouse
	Stock      []entity.Stock
}

// Source fuente de datos del catálogo (API REST de prueba, archivo, etc.).
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// CatalogUseCase listados del catálogo y seed.
type CatalogUseCase struct {
	catalog repository.Catalog
	writer  repository.CatalogWriter
	log     *logger.Logger
}

// NewCatalogUseCase construye el caso de uso. writer puede ser nil si no se usa Seed.
func NewCatalogUseCase(catalog repository.Catalog, writer repository.CatalogWriter, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog, writer: writer, log: log.WithComponent("catalog")}
}

// ListProducts productos para el selector.
func (uc *CatalogUseCase) ListProducts(_ context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.catalog.ListProducts()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ID:             p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			RetailPrice:    p.RetailPrice,
			WarehouseID:    p.WarehouseID,
			AllowDuplicate: p.AllowDuplicate,
		})
	}
	return out, nil
}

// ListCustomers clientes.
func (uc *CatalogUseCase) ListCustomers(_ context.Context) ([]dto.PersonResponse, error) {
	list, err := uc.catalog.ListCustomers()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.PersonResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email})
	}
	return out, nil
}

// ListSuppliers proveedores.
func (uc *CatalogUseCase) ListSuppliers(_ context.Context) ([]dto.PersonResponse, error) {
	list, err := uc.catalog.ListSuppliers()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.PersonResponse{ID: s.ID, Name: s.Name, Phone: s.Phone, Email: s.Email})
	}
	return out, nil
}

// ListWarehouses bodegas.
func (uc *CatalogUseCase) ListWarehouses(_ context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.catalog.ListWarehouses()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address})
	}
	return out, nil
}

// Seed trae el catálogo de la fuente y lo inserta o actualiza. Bodegas primero: los
// productos y el stock las referencian.
func (uc *CatalogUseCase) Seed(ctx context.Context, src Source) (*dto.SeedResponse, error) {
	if uc.writer == nil {
		return nil, fmt.Errorf("seed: catálogo de solo lectura")
	}
	snap, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: leer fuente: %w", err)
	}
	for i := range snap.Warehouses {
		if err := uc.writer.UpsertWarehouse(&snap.Warehouses[i]); err != nil {
			return nil, err
		}
	}
	for i := range snap.Products {
		if err := uc.writer.UpsertProduct(&snap.Products[i]); err != nil {
			return nil, err
		}
	}
	for i := range snap.Customers {
		if err := uc.writer.UpsertCustomer(&snap.Customers[i]); err != nil {
			return nil, err
		}
	}
	if err := uc.resolveSuppliers(snap.Suppliers); err != nil {
		return nil, err
	}
	for i := range snap.Suppliers {
		if err := uc.writer.UpsertSupplier(&snap.Suppliers[i]); err != nil {
			return nil, err
		}
	}
	for i := range snap.Stock {
		if err := uc.writer.UpsertStock(&snap.Stock[i]); err != nil {
			return nil, err
		}
	}
	out := &dto.SeedResponse{
		Products:   len(snap.Products),
		Customers:  len(snap.Customers),
		Suppliers:  len(snap.Suppliers),
		Warehouses: len(snap.Warehouses),
	}
	uc.log.Info().Int("products", out.Products).Int("customers", out.Customers).
		Int("suppliers", out.Suppliers).Int("warehouses", out.Warehouses).Msg("catálogo cargado")
	return out, nil
}

// resolveSuppliers asigna a los proveedores sin ID el de un proveedor ya guardado
// con el mismo nombre. Los que no existen quedan en cero y la base les da uno nuevo.
func (uc *CatalogUseCase) resolveSuppliers(in []entity.Supplier) error {
	existing, err := uc.catalog.ListSuppliers()
	if err != nil {
		return err
	}
	byName := make(map[string]int64, len(existing))
	for _, s := range existing {
		byName[strings.ToLower(strings.TrimSpace(s.Name))] = s.ID
	}
	for i := range in {
		if in[i].ID == 0 {
			in[i].ID = byName[strings.ToLower(strings.TrimSpace(in[i].Name))]
		}
	}
	return nil
}
