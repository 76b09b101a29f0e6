// Package memory implementa todos los puertos de persistencia en memoria del proceso.
// Se usa en tests y con STORAGE_DRIVER=memory. El estado vive en un Store inyectado,
// no en variables de paquete.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type stockKey struct {
	productID   int64
	warehouseID int64
}

type data struct {
	invoices      map[string]entity.Invoice
	invoiceOrder  []string
	transactions  map[string]entity.Transaction
	txOrder       []string
	accounts      map[int64]entity.BankAccount
	products      map[int64]entity.Product
	customers     map[int64]entity.Customer
	suppliers     map[int64]entity.Supplier
	warehouses    map[int64]entity.Warehouse
	stock         map[stockKey]entity.Stock
	nextAccountID int64
}

func newData() data {
	return data{
		invoices:     make(map[string]entity.Invoice),
		transactions: make(map[string]entity.Transaction),
		accounts:     make(map[int64]entity.BankAccount),
		products:     make(map[int64]entity.Product),
		customers:    make(map[int64]entity.Customer),
		suppliers:    make(map[int64]entity.Supplier),
		warehouses:   make(map[int64]entity.Warehouse),
		stock:        make(map[stockKey]entity.Stock),
	}
}

// clone copia mapas y órdenes. Los ítems de una factura nunca se mutan en sitio
// (Update reemplaza el slice), así que compartirlos entre copias es seguro.
func (d data) clone() data {
	out := data{
		invoices:      cloneMap(d.invoices),
		invoiceOrder:  slices.Clone(d.invoiceOrder),
		transactions:  cloneMap(d.transactions),
		txOrder:       slices.Clone(d.txOrder),
		accounts:      cloneMap(d.accounts),
		products:      cloneMap(d.products),
		customers:     cloneMap(d.customers),
		suppliers:     cloneMap(d.suppliers),
		warehouses:    cloneMap(d.warehouses),
		stock:         cloneMap(d.stock),
		nextAccountID: d.nextAccountID,
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store estado completo de la aplicación en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa unidades de trabajo
	d    data
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Invoices repositorio de documentos.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// Transactions repositorio de recibos y pagos.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Accounts repositorio de cuentas bancarias.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }

// Catalog catálogo (lectura y carga).
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

// Run ejecuta fn con los repositorios del store. Si fn falla se restaura la copia
// tomada al inicio: ningún cambio parcial queda visible. Las escrituras hechas
// fuera de Run esperan a que termine (ver autocommit), así la restauración solo
// descarta lo que escribió fn.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	err := fn(repository.Repos{
		Invoices:     &InvoiceRepo{s: s, inTx: true},
		Transactions: &TransactionRepo{s: s, inTx: true},
		Accounts:     &AccountRepo{s: s, inTx: true},
		Catalog:      &CatalogRepo{s: s, inTx: true},
	})
	if err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// autocommit toma txMu para una escritura suelta, que cuenta como su propia
// unidad de trabajo. Dentro de Run el candado ya está tomado.
func (s *Store) autocommit(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

func removeID(order []string, id string) []string {
	if i := slices.Index(order, id); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}
