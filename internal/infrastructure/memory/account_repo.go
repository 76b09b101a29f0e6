package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.BankAccountRepository = (*AccountRepo)(nil)

// AccountRepo cuentas bancarias en memoria; IDs secuenciales.
type AccountRepo struct {
	s    *Store
	inTx bool
}

func (r *AccountRepo) Create(account *entity.BankAccount) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if account.ID == 0 {
		r.s.d.nextAccountID++
		account.ID = r.s.d.nextAccountID
	} else if _, ok := r.s.d.accounts[account.ID]; ok {
		return domain.ErrDuplicate
	} else if account.ID > r.s.d.nextAccountID {
		r.s.d.nextAccountID = account.ID
	}
	r.s.d.accounts[account.ID] = *account
	return nil
}

func (r *AccountRepo) GetByID(id int64) (*entity.BankAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.d.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AccountRepo) List() ([]entity.BankAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.BankAccount, 0, len(r.s.d.accounts))
	for _, a := range r.s.d.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccountRepo) UpdateBalance(id int64, delta decimal.Decimal) error {
	defer r.s.autocommit(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.d.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	r.s.d.accounts[id] = a
	return nil
}
