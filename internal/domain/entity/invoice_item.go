package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea persistida de un documento.
type InvoiceItem struct {
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// LineTotal cantidad * precio unitario.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}
