package billing

import (
	"context"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// InvoiceLineForPDF línea enriquecida con el nombre del producto.
type InvoiceLineForPDF struct {
	entity.InvoiceItem
	ProductName string
}

// InvoiceDocument datos que necesita el generador para un documento.
type InvoiceDocument struct {
	Invoice    *entity.Invoice
	PersonName string
	Lines      []InvoiceLineForPDF
}

// InvoicePDFGenerator genera la representación impresa de un documento.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
