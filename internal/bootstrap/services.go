package bootstrap

import (
	"github.com/jhoicas/tienda-contable/internal/application/banking"
	"github.com/jhoicas/tienda-contable/internal/application/billing"
	"github.com/jhoicas/tienda-contable/internal/application/catalog"
	"github.com/jhoicas/tienda-contable/internal/application/ledger"
	infrapdf "github.com/jhoicas/tienda-contable/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-contable/pkg/config"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// Services casos de uso listos para los adaptadores de entrada.
type Services struct {
	Drafts     *billing.DraftUseCase
	Finalize   *billing.FinalizeInvoiceUseCase
	Invoices   *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	Ledger     *ledger.LedgerUseCase
	Banking    *banking.BankingUseCase
	Catalog    *catalog.CatalogUseCase
}

// NewServices cablea los casos de uso sobre el backend.
func NewServices(b *Backend, cfg *config.Config, log *logger.Logger) *Services {
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	bankingUC := banking.NewBankingUseCase(b.Accounts, b.Transactions, b.TxRunner, log)
	return &Services{
		Drafts:     billing.NewDraftUseCase(b.Drafts, b.Catalog, cfg.Billing.DefaultQuantity),
		Finalize:   billing.NewFinalizeInvoiceUseCase(b.Drafts, b.TxRunner, b.Catalog, cfg.Billing.CheckStock, log),
		Invoices:   billing.NewInvoiceUseCase(b.Invoices, b.Catalog, log),
		InvoicePDF: billing.NewPDFUseCase(b.Invoices, b.Catalog, pdfGenerator),
		Ledger:     ledger.NewLedgerUseCase(b.Invoices, b.Transactions, b.Catalog, bankingUC, pdfGenerator, log),
		Banking:    bankingUC,
		Catalog:    catalog.NewCatalogUseCase(b.Catalog, b.CatalogWriter, log),
	}
}
