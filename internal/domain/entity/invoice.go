package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind identifica la colección a la que pertenece un documento.
type InvoiceKind string

// Colecciones de documentos.
const (
	KindSale           InvoiceKind = "sale"
	KindPurchase       InvoiceKind = "purchase"
	KindSalesReturn    InvoiceKind = "sales_return"
	KindPurchaseReturn InvoiceKind = "purchase_return"
	KindProforma       InvoiceKind = "proforma"
)

// AllInvoiceKinds en el orden en que se listan.
var AllInvoiceKinds = []InvoiceKind{KindSale, KindPurchase, KindSalesReturn, KindPurchaseReturn, KindProforma}

// Valid indica si el tipo es uno de los conocidos.
func (k InvoiceKind) Valid() bool {
	switch k {
	case KindSale, KindPurchase, KindSalesReturn, KindPurchaseReturn, KindProforma:
		return true
	}
	return false
}

// Numbered indica si la serie lleva consecutivo (solo ventas y compras).
func (k InvoiceKind) Numbered() bool {
	return k == KindSale || k == KindPurchase
}

// Invoice representa un documento finalizado (venta, compra, devolución o proforma).
// Exactamente uno de CustomerID / SupplierID es distinto de cero.
type Invoice struct {
	ID              string
	Kind            InvoiceKind
	InvoiceNumber   int64 // 0 para devoluciones y proformas
	CustomerID      int64
	SupplierID      int64
	Items           []InvoiceItem
	IssueDate       time.Time
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	Tax             decimal.Decimal // porcentaje aplicado después del descuento
	GrandTotal      decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PersonType devuelve el tipo de tercero del documento.
func (i *Invoice) PersonType() PersonType {
	if i.SupplierID != 0 {
		return PersonSupplier
	}
	return PersonCustomer
}
