package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo cuentas bancarias (usable con pool o tx).
type BankAccountRepo struct {
	q Querier
}

// NewBankAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

// Create inserta la cuenta y asigna el ID generado.
func (r *BankAccountRepo) Create(a *entity.BankAccount) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO bank_accounts (bank_name, branch_name, branch_code, account_number, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		a.BankName, a.BranchName, a.BranchCode, a.AccountNumber, a.Balance, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta; nil, nil si no existe.
func (r *BankAccountRepo) GetByID(id int64) (*entity.BankAccount, error) {
	var a entity.BankAccount
	err := r.q.QueryRow(context.Background(), `
		SELECT id, bank_name, branch_name, branch_code, account_number, balance, created_at, updated_at
		FROM bank_accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.BankName, &a.BranchName, &a.BranchCode, &a.AccountNumber, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &a, nil
}

// List todas las cuentas por ID.
func (r *BankAccountRepo) List() ([]entity.BankAccount, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, bank_name, branch_name, branch_code, account_number, balance, created_at, updated_at
		FROM bank_accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()
	out := []entity.BankAccount{}
	for rows.Next() {
		var a entity.BankAccount
		if err := rows.Scan(&a.ID, &a.BankName, &a.BranchName, &a.BranchCode, &a.AccountNumber, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateBalance suma delta en la base (balance = balance + delta), sin leer-modificar-escribir.
func (r *BankAccountRepo) UpdateBalance(id int64, delta decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE bank_accounts SET balance = balance + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
