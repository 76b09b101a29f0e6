package draft

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// MoneyScale decimales con que se guardan los montos (columnas NUMERIC(18,4)).
const MoneyScale int32 = 4

// Totals resultado del cálculo de un documento.
type Totals struct {
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	AfterDiscount decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ComputeTotals calcula:
//
//	subtotal   = Σ cantidad * precio
//	descuento  = discountAmount si > 0, si no subtotal * discountPercent / 100
//	total      = (subtotal - descuento) * (1 + tax / 100)
//
// Cada monto se redondea a MoneyScale decimales antes de usarse en el siguiente
// paso, así el documento vale lo mismo en memoria y en Postgres.
// Se usa tanto en el borrador como en la edición de documentos ya finalizados.
func ComputeTotals(items []entity.InvoiceItem, discountAmount, discountPercent, tax decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = subtotal.Round(MoneyScale)
	discount := subtotal.Mul(discountPercent).Div(hundred).Round(MoneyScale)
	if discountAmount.IsPositive() {
		discount = discountAmount.Round(MoneyScale)
	}
	after := subtotal.Sub(discount)
	grand := after.Mul(decimal.NewFromInt(1).Add(tax.Div(hundred))).Round(MoneyScale)
	return Totals{
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: after,
		GrandTotal:    grand,
	}
}

// NormalizeDiscounts corrige el caso en que ambos descuentos quedaron distintos de cero:
// manda el valor y el porcentaje pasa a cero. recovered indica si hubo corrección.
func NormalizeDiscounts(amount, percent decimal.Decimal) (decimal.Decimal, decimal.Decimal, bool) {
	if !amount.IsZero() && !percent.IsZero() {
		return amount, decimal.Zero, true
	}
	return amount, percent, false
}

// recalculate actualiza subtotal y total del borrador.
func recalculate(s State) State {
	s.DiscountAmount, s.DiscountPercent, _ = NormalizeDiscounts(s.DiscountAmount, s.DiscountPercent)
	t := ComputeTotals(s.InvoiceItems(), s.DiscountAmount, s.DiscountPercent, s.Tax)
	s.Subtotal = t.Subtotal
	s.GrandTotal = t.GrandTotal
	return s
}
