package draft

import "github.com/jhoicas/tienda-contable/internal/domain/entity"

// NextInvoiceNumber consecutivo de la serie: máximo actual + 1.
// Devoluciones y proformas no llevan consecutivo (0).
func NextInvoiceNumber(kind entity.InvoiceKind, currentMax int64) int64 {
	if !kind.Numbered() {
		return 0
	}
	return currentMax + 1
}

// MaxInvoiceNumber máximo consecutivo entre los documentos dados (0 si no hay).
func MaxInvoiceNumber(invoices []entity.Invoice) int64 {
	var max int64
	for _, inv := range invoices {
		if inv.InvoiceNumber > max {
			max = inv.InvoiceNumber
		}
	}
	return max
}
