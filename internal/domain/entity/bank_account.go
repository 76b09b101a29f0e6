package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount cuenta bancaria. Balance se actualiza solo con deltas incrementales.
type BankAccount struct {
	ID            int64
	BankName      string
	BranchName    string
	BranchCode    string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
