package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de movimiento de caja.
type TransactionType string

const (
	TransactionReceipt TransactionType = "receipt" // entra dinero a la cuenta
	TransactionPayment TransactionType = "payment" // sale dinero de la cuenta
)

// Valid indica si el tipo es recibo o pago.
func (t TransactionType) Valid() bool {
	return t == TransactionReceipt || t == TransactionPayment
}

// Transaction recibo o pago de caja contra una cuenta bancaria.
// CustomerID / SupplierID son opcionales (0 = sin tercero).
type Transaction struct {
	ID          string
	AccountID   int64
	Date        time.Time
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	CustomerID  int64
	SupplierID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
