package memory

import (
	"fmt"
	"slices"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo documentos en memoria, en orden de inserción.
type InvoiceRepo struct {
	s    *Store
	inTx bool
}

// Create guarda una copia del documento. El consecutivo es único por tipo.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.invoices[invoice.ID]; ok || invoice.ID == "" {
		return domain.ErrDuplicate
	}
	if invoice.InvoiceNumber > 0 {
		for _, inv := range r.s.d.invoices {
			if inv.Kind == invoice.Kind && inv.InvoiceNumber == invoice.InvoiceNumber {
				return fmt.Errorf("%w: consecutivo %d ya usado en %s", domain.ErrConflict, invoice.InvoiceNumber, invoice.Kind)
			}
		}
	}
	cp := *invoice
	cp.Items = slices.Clone(invoice.Items)
	r.s.d.invoices[cp.ID] = cp
	r.s.d.invoiceOrder = append(r.s.d.invoiceOrder, cp.ID)
	return nil
}

// Update reemplaza el documento conservando Kind y número guardados.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.invoices[invoice.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *invoice
	cp.Kind = cur.Kind
	cp.InvoiceNumber = cur.InvoiceNumber
	cp.CreatedAt = cur.CreatedAt
	cp.Items = slices.Clone(invoice.Items)
	r.s.d.invoices[cp.ID] = cp
	return nil
}

// GetByID devuelve una copia o nil, nil.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.d.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Items = slices.Clone(inv.Items)
	return &inv, nil
}

// ListByKind documentos de un tipo con paginación (limit <= 0 = sin límite).
func (r *InvoiceRepo) ListByKind(kind entity.InvoiceKind, limit, offset int) ([]entity.Invoice, error) {
	all := r.filter(func(inv entity.Invoice) bool { return inv.Kind == kind })
	if offset >= len(all) {
		return []entity.Invoice{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ListByPerson documentos de un tipo de un tercero.
func (r *InvoiceRepo) ListByPerson(kind entity.InvoiceKind, personType entity.PersonType, personID int64) ([]entity.Invoice, error) {
	return r.filter(func(inv entity.Invoice) bool {
		if inv.Kind != kind {
			return false
		}
		if personType == entity.PersonSupplier {
			return inv.SupplierID == personID
		}
		return inv.CustomerID == personID
	}), nil
}

// MaxNumber mayor consecutivo del tipo. Dentro de Store.Run la numeración queda
// serializada por el candado de la unidad de trabajo.
func (r *InvoiceRepo) MaxNumber(kind entity.InvoiceKind) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var max int64
	for _, inv := range r.s.d.invoices {
		if inv.Kind == kind && inv.InvoiceNumber > max {
			max = inv.InvoiceNumber
		}
	}
	return max, nil
}

// Delete borra el documento.
func (r *InvoiceRepo) Delete(id string) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.d.invoices, id)
	r.s.d.invoiceOrder = removeID(r.s.d.invoiceOrder, id)
	return nil
}

func (r *InvoiceRepo) filter(keep func(entity.Invoice) bool) []entity.Invoice {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Invoice{}
	for _, id := range r.s.d.invoiceOrder {
		inv := r.s.d.invoices[id]
		if keep(inv) {
			inv.Items = slices.Clone(inv.Items)
			out = append(out, inv)
		}
	}
	return out
}
