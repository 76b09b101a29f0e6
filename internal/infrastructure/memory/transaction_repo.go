package memory

import (
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo recibos y pagos en memoria.
type TransactionRepo struct {
	s    *Store
	inTx bool
}

func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.transactions[tx.ID]; ok || tx.ID == "" {
		return domain.ErrDuplicate
	}
	r.s.d.transactions[tx.ID] = *tx
	r.s.d.txOrder = append(r.s.d.txOrder, tx.ID)
	return nil
}

func (r *TransactionRepo) Update(tx *entity.Transaction) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.transactions[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.transactions[tx.ID] = *tx
	return nil
}

func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tx, ok := r.s.d.transactions[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (r *TransactionRepo) Delete(id string) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.transactions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.d.transactions, id)
	r.s.d.txOrder = removeID(r.s.d.txOrder, id)
	return nil
}

func (r *TransactionRepo) ListByAccount(accountID int64) ([]entity.Transaction, error) {
	return r.filter(func(tx entity.Transaction) bool { return tx.AccountID == accountID }), nil
}

func (r *TransactionRepo) ListByPerson(personType entity.PersonType, personID int64) ([]entity.Transaction, error) {
	return r.filter(func(tx entity.Transaction) bool {
		if personType == entity.PersonSupplier {
			return tx.SupplierID == personID
		}
		return tx.CustomerID == personID
	}), nil
}

func (r *TransactionRepo) filter(keep func(entity.Transaction) bool) []entity.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Transaction{}
	for _, id := range r.s.d.txOrder {
		if tx := r.s.d.transactions[id]; keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
