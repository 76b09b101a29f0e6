package dto

import "github.com/shopspring/decimal"

// LedgerResponse estado de cuenta de un cliente o proveedor.
// Opening es el saldo anterior a From; Balance el saldo al cierre del rango.
type LedgerResponse struct {
	PersonType  string                `json:"person_type"`
	PersonID    int64                 `json:"person_id"`
	PersonName  string                `json:"person_name"`
	From        string                `json:"from,omitempty"`
	To          string                `json:"to,omitempty"`
	Opening     decimal.Decimal       `json:"opening"`
	Entries     []LedgerEntryResponse `json:"entries"`
	TotalDebit  decimal.Decimal       `json:"total_debit"`
	TotalCredit decimal.Decimal       `json:"total_credit"`
	Balance     decimal.Decimal       `json:"balance"`
}

// LedgerEntryResponse línea del estado de cuenta.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	InvoiceNumber int64           `json:"invoice_number,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}
