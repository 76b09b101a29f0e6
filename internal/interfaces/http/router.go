package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-contable/internal/application/banking"
	"github.com/jhoicas/tienda-contable/internal/application/billing"
	"github.com/jhoicas/tienda-contable/internal/application/catalog"
	"github.com/jhoicas/tienda-contable/internal/application/ledger"
	"github.com/jhoicas/tienda-contable/pkg/jwt"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Drafts     *billing.DraftUseCase
	Finalize   *billing.FinalizeInvoiceUseCase
	Invoices   *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	Ledger     *ledger.LedgerUseCase
	Banking    *banking.BankingUseCase
	Catalog    *catalog.CatalogUseCase
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API. Todo bajo /api requiere Bearer Token;
// editar o borrar documentos, borrar líneas del estado de cuenta y crear cuentas es solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.WithComponent("http")
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(jwt.RoleAdmin, jwt.RoleCashier)
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Catalog, log)
	api.Get("/products", staff, catalogHandler.Products)
	api.Get("/customers", staff, catalogHandler.Customers)
	api.Get("/suppliers", staff, catalogHandler.Suppliers)
	api.Get("/warehouses", staff, catalogHandler.Warehouses)

	// Formularios de captura
	drafts := api.Group("/drafts", staff)
	draftHandler := NewDraftHandler(deps.Drafts, deps.Finalize, log)
	drafts.Post("/", draftHandler.Open)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Post("/:id/actions", draftHandler.Apply)
	drafts.Post("/:id/reset", draftHandler.Reset)
	drafts.Post("/:id/finalize", draftHandler.Finalize)
	drafts.Delete("/:id", draftHandler.Discard)

	// Documentos registrados
	invoices := api.Group("/invoices", staff)
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.InvoicePDF, log)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Put("/:id", adminOnly, invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)

	// Estado de cuenta
	ledgerGroup := api.Group("/ledger", staff)
	ledgerHandler := NewLedgerHandler(deps.Ledger, log)
	ledgerGroup.Delete("/entries/:entryType/:id", adminOnly, ledgerHandler.DeleteEntry)
	ledgerGroup.Get("/:personType/:personID", ledgerHandler.Statement)
	ledgerGroup.Get("/:personType/:personID/pdf", ledgerHandler.StatementPDF)

	// Bancos
	bankingHandler := NewBankingHandler(deps.Banking, log)
	accounts := api.Group("/accounts", staff)
	accounts.Get("/", bankingHandler.ListAccounts)
	accounts.Post("/", adminOnly, bankingHandler.CreateAccount)
	accounts.Get("/:id", bankingHandler.GetAccount)
	accounts.Get("/:id/transactions", bankingHandler.ListTransactions)

	transactions := api.Group("/transactions", staff)
	transactions.Post("/", bankingHandler.CreateTransaction)
	transactions.Put("/:id", bankingHandler.UpdateTransaction)
	transactions.Delete("/:id", bankingHandler.DeleteTransaction)
}
