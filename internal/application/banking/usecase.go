// Package banking administra cuentas bancarias y sus recibos/pagos.
// Toda mutación de una transacción y su ajuste de saldo van en la misma unidad de trabajo.
package banking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/banking"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// BankingUseCase casos de uso de cuentas y transacciones.
type BankingUseCase struct {
	accountRepo repository.BankAccountRepository
	txRepo      repository.TransactionRepository
	txRunner    repository.TxRunner
	log         *logger.Logger
	now         func() time.Time
}

// NewBankingUseCase construye el caso de uso.
func NewBankingUseCase(
	accountRepo repository.BankAccountRepository,
	txRepo repository.TransactionRepository,
	txRunner repository.TxRunner,
	log *logger.Logger,
) *BankingUseCase {
	return &BankingUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		txRunner:    txRunner,
		log:         log.WithComponent("banking"),
		now:         time.Now,
	}
}

// CreateAccount registra una cuenta con saldo cero.
func (uc *BankingUseCase) CreateAccount(_ context.Context, in dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	if in.BankName == "" || in.AccountNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	acc := &entity.BankAccount{
		BankName:      in.BankName,
		BranchName:    in.BranchName,
		BranchCode:    in.BranchCode,
		AccountNumber: in.AccountNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.accountRepo.Create(acc); err != nil {
		return nil, err
	}
	return toAccountResponse(acc), nil
}

// ListAccounts lista las cuentas con su saldo.
func (uc *BankingUseCase) ListAccounts(_ context.Context) ([]dto.BankAccountResponse, error) {
	list, err := uc.accountRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BankAccountResponse, 0, len(list))
	for i := range list {
		out = append(out, *toAccountResponse(&list[i]))
	}
	return out, nil
}

// GetAccount obtiene una cuenta.
func (uc *BankingUseCase) GetAccount(_ context.Context, id int64) (*dto.BankAccountResponse, error) {
	acc, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(acc), nil
}

// ListTransactions movimientos de una cuenta.
func (uc *BankingUseCase) ListTransactions(_ context.Context, accountID int64) ([]dto.TransactionResponse, error) {
	acc, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.txRepo.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for i := range list {
		out = append(out, *toTransactionResponse(&list[i]))
	}
	return out, nil
}

// CreateTransaction registra un recibo o pago y ajusta el saldo de la cuenta.
func (uc *BankingUseCase) CreateTransaction(ctx context.Context, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	tx.ID = uuid.NewString()
	tx.CreatedAt, tx.UpdatedAt = now, now

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.Transactions.Create(tx); err != nil {
			return err
		}
		return applyAdjustments(r.Accounts, banking.AddAdjustments(*tx))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transaction_id", tx.ID).Str("type", string(tx.Type)).
		Int64("account_id", tx.AccountID).Str("amount", tx.Amount.String()).Msg("transacción registrada")
	return toTransactionResponse(tx), nil
}

// UpdateTransaction reemplaza una transacción. Si cambia de cuenta, revierte el efecto
// en la anterior y lo aplica en la nueva.
func (uc *BankingUseCase) UpdateTransaction(ctx context.Context, id string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	updated, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	updated.ID = id
	updated.UpdatedAt = uc.now()

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		old, err := r.Transactions.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		updated.CreatedAt = old.CreatedAt
		if err := r.Transactions.Update(updated); err != nil {
			return err
		}
		return applyAdjustments(r.Accounts, banking.EditAdjustments(*old, *updated))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transaction_id", id).Str("amount", updated.Amount.String()).Msg("transacción actualizada")
	return toTransactionResponse(updated), nil
}

// DeleteTransaction borra la transacción y revierte su efecto en el saldo.
func (uc *BankingUseCase) DeleteTransaction(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		old, err := r.Transactions.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := r.Transactions.Delete(id); err != nil {
			return err
		}
		return applyAdjustments(r.Accounts, banking.DeleteAdjustments(*old))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("transaction_id", id).Msg("transacción eliminada")
	return nil
}

func (uc *BankingUseCase) fromRequest(in dto.TransactionRequest) (*entity.Transaction, error) {
	t := entity.TransactionType(in.Type)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	if in.AccountID <= 0 {
		return nil, fmt.Errorf("%w: account_id requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	if in.CustomerID != 0 && in.SupplierID != 0 {
		return nil, fmt.Errorf("%w: cliente y proveedor son excluyentes", domain.ErrInvalidInput)
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
	}
	return &entity.Transaction{
		AccountID:   in.AccountID,
		Date:        date,
		Type:        t,
		Amount:      in.Amount,
		Description: in.Description,
		CustomerID:  in.CustomerID,
		SupplierID:  in.SupplierID,
	}, nil
}

// applyAdjustments suma cada delta a su cuenta; una cuenta inexistente aborta la transacción.
func applyAdjustments(accounts repository.BankAccountRepository, adjs []banking.Adjustment) error {
	for _, a := range adjs {
		if err := accounts.UpdateBalance(a.AccountID, a.Delta); err != nil {
			return fmt.Errorf("cuenta %d: %w", a.AccountID, err)
		}
	}
	return nil
}

func toAccountResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	return &dto.BankAccountResponse{
		ID:            a.ID,
		BankName:      a.BankName,
		BranchName:    a.BranchName,
		BranchCode:    a.BranchCode,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
	}
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        t.Date.Format(dto.DateLayout),
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		CustomerID:  t.CustomerID,
		SupplierID:  t.SupplierID,
	}
}
