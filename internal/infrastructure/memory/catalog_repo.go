package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var (
	_ repository.Catalog       = (*CatalogRepo)(nil)
	_ repository.CatalogWriter = (*CatalogRepo)(nil)
)

// CatalogRepo productos, terceros, bodegas y stock en memoria.
type CatalogRepo struct {
	s    *Store
	inTx bool
}

func (r *CatalogRepo) ProductByID(id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.d.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *CatalogRepo) CustomerByID(id int64) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.d.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CatalogRepo) SupplierByID(id int64) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if s, ok := r.s.d.suppliers[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *CatalogRepo) StockOf(productID, warehouseID int64) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if st, ok := r.s.d.stock[stockKey{productID, warehouseID}]; ok {
		return st.Quantity, nil
	}
	return decimal.Zero, nil
}

func (r *CatalogRepo) ListProducts() ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.d.products), nil
}

func (r *CatalogRepo) ListCustomers() ([]entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.d.customers), nil
}

func (r *CatalogRepo) ListSuppliers() ([]entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.d.suppliers), nil
}

func (r *CatalogRepo) ListWarehouses() ([]entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.d.warehouses), nil
}

func (r *CatalogRepo) UpsertProduct(p *entity.Product) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == 0 {
		p.ID = nextID(r.s.d.products)
	}
	r.s.d.products[p.ID] = *p
	return nil
}

func (r *CatalogRepo) UpsertCustomer(c *entity.Customer) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == 0 {
		c.ID = nextID(r.s.d.customers)
	}
	r.s.d.customers[c.ID] = *c
	return nil
}

func (r *CatalogRepo) UpsertSupplier(s *entity.Supplier) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if s.ID == 0 {
		s.ID = nextID(r.s.d.suppliers)
	}
	r.s.d.suppliers[s.ID] = *s
	return nil
}

func (r *CatalogRepo) UpsertWarehouse(w *entity.Warehouse) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w.ID == 0 {
		w.ID = nextID(r.s.d.warehouses)
	}
	r.s.d.warehouses[w.ID] = *w
	return nil
}

func (r *CatalogRepo) UpsertStock(st *entity.Stock) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.stock[stockKey{st.ProductID, st.WarehouseID}] = *st
	return nil
}

func nextID[V any](m map[int64]V) int64 {
	var max int64
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func sortedValues[V any](m map[int64]V) []V {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
