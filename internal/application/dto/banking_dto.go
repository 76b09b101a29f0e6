package dto

import "github.com/shopspring/decimal"

// CreateBankAccountRequest body para POST /api/accounts. El saldo arranca en cero.
type CreateBankAccountRequest struct {
	BankName      string `json:"bank_name" validate:"required,max=120"`
	BranchName    string `json:"branch_name,omitempty" validate:"max=120"`
	BranchCode    string `json:"branch_code,omitempty" validate:"max=20"`
	AccountNumber string `json:"account_number" validate:"required,max=40"`
}

// BankAccountResponse cuenta con su saldo vigente.
type BankAccountResponse struct {
	ID            int64           `json:"id"`
	BankName      string          `json:"bank_name"`
	BranchName    string          `json:"branch_name,omitempty"`
	BranchCode    string          `json:"branch_code,omitempty"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransactionRequest body para POST/PUT de recibos y pagos.
// Como máximo uno de CustomerID / SupplierID; ninguno = movimiento sin tercero.
type TransactionRequest struct {
	AccountID   int64           `json:"account_id" validate:"required,gt=0"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type        string          `json:"type" validate:"required,oneof=receipt payment"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty" validate:"max=255"`
	CustomerID  int64           `json:"customer_id,omitempty" validate:"gte=0"`
	SupplierID  int64           `json:"supplier_id,omitempty" validate:"gte=0"`
}

// TransactionResponse recibo o pago registrado.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   int64           `json:"account_id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CustomerID  int64           `json:"customer_id,omitempty"`
	SupplierID  int64           `json:"supplier_id,omitempty"`
}
