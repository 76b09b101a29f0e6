package repository

import "github.com/jhoicas/tienda-contable/internal/domain/entity"

// TransactionRepository puerto de persistencia para recibos y pagos.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	Update(tx *entity.Transaction) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id string) (*entity.Transaction, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(id string) error
	ListByAccount(accountID int64) ([]entity.Transaction, error)
	ListByPerson(personType entity.PersonType, personID int64) ([]entity.Transaction, error)
}
