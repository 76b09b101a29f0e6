package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo recibos y pagos (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, account_id, date, type, amount, description, customer_id, supplier_id, created_at, updated_at`

// Create persiste una transacción.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tx.ID, tx.AccountID, tx.Date, tx.Type, tx.Amount, tx.Description,
		nullIfZero(tx.CustomerID), nullIfZero(tx.SupplierID), tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cuenta %d", domain.ErrNotFound, tx.AccountID)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Update reemplaza la transacción.
func (r *TransactionRepo) Update(tx *entity.Transaction) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE transactions
		SET account_id = $2, date = $3, type = $4, amount = $5, description = $6,
		    customer_id = $7, supplier_id = $8, updated_at = $9
		WHERE id = $1`,
		tx.ID, tx.AccountID, tx.Date, tx.Type, tx.Amount, tx.Description,
		nullIfZero(tx.CustomerID), nullIfZero(tx.SupplierID), tx.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cuenta %d", domain.ErrNotFound, tx.AccountID)
		}
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una transacción; nil, nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	row := r.q.QueryRow(context.Background(), `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// Delete borra la transacción.
func (r *TransactionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByAccount movimientos de la cuenta en orden cronológico.
func (r *TransactionRepo) ListByAccount(accountID int64) ([]entity.Transaction, error) {
	return r.list(`SELECT `+transactionColumns+` FROM transactions WHERE account_id = $1 ORDER BY date, created_at`, accountID)
}

// ListByPerson movimientos de un cliente o proveedor.
func (r *TransactionRepo) ListByPerson(personType entity.PersonType, personID int64) ([]entity.Transaction, error) {
	column := "customer_id"
	if personType == entity.PersonSupplier {
		column = "supplier_id"
	}
	return r.list(`SELECT `+transactionColumns+` FROM transactions WHERE `+column+` = $1 ORDER BY date, created_at`, personID)
}

func (r *TransactionRepo) list(query string, args ...any) ([]entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	out := []entity.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	var customerID, supplierID *int64
	err := row.Scan(&tx.ID, &tx.AccountID, &tx.Date, &tx.Type, &tx.Amount, &tx.Description,
		&customerID, &supplierID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.CustomerID = derefInt(customerID)
	tx.SupplierID = derefInt(supplierID)
	return &tx, nil
}
