package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// BankAccountRepository puerto de persistencia para cuentas bancarias.
type BankAccountRepository interface {
	Create(account *entity.BankAccount) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id int64) (*entity.BankAccount, error)
	List() ([]entity.BankAccount, error)
	// UpdateBalance suma delta al saldo (incremental, no reemplaza). domain.ErrNotFound si la cuenta no existe.
	UpdateBalance(id int64, delta decimal.Decimal) error
}
