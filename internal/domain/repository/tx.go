package repository

import "context"

// Repos repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Invoices     InvoiceRepository
	Transactions TransactionRepository
	Accounts     BankAccountRepository
	Catalog      Catalog
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
