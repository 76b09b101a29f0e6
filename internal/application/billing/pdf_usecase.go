package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

// PDFUseCase genera la representación impresa (PDF) de un documento registrado.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	catalog     repository.Catalog
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, catalog repository.Catalog, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		catalog:     catalog,
		generator:   generator,
	}
}

// DownloadInvoicePDF carga el documento, resuelve nombres de tercero y productos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]InvoiceLineForPDF, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, InvoiceLineForPDF{
			InvoiceItem: it,
			ProductName: productName(uc.catalog, it.ProductID),
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoiceDocument{
		Invoice:    inv,
		PersonName: personName(uc.catalog, inv),
		Lines:      lines,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, pdfFilename(inv), nil
}

func pdfFilename(inv *entity.Invoice) string {
	if inv.InvoiceNumber > 0 {
		return fmt.Sprintf("%s_%d.pdf", inv.Kind, inv.InvoiceNumber)
	}
	return fmt.Sprintf("%s_%s.pdf", inv.Kind, inv.ID[:min(8, len(inv.ID))])
}
