package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/application/banking"
	"github.com/jhoicas/tienda-contable/internal/application/billing"
	"github.com/jhoicas/tienda-contable/internal/application/catalog"
	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/application/ledger"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/tienda-contable/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-contable/pkg/jwt"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el backend en memoria
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	drafts := memory.NewDraftStore(time.Hour)
	cat := store.Catalog()

	require.NoError(t, cat.UpsertWarehouse(&entity.Warehouse{ID: 1, Name: "Bodega principal"}))
	require.NoError(t, cat.UpsertProduct(&entity.Product{ID: 1, Name: "Café", RetailPrice: dec("1200"), WarehouseID: 1}))
	require.NoError(t, cat.UpsertStock(&entity.Stock{ProductID: 1, WarehouseID: 1, Quantity: dec("5")}))
	require.NoError(t, cat.UpsertCustomer(&entity.Customer{ID: 1, Name: "Ana"}))

	bankingUC := banking.NewBankingUseCase(store.Accounts(), store.Transactions(), store, log)
	gen := pdf.NewMarotoPDFGenerator("Tienda Test")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Drafts:     billing.NewDraftUseCase(drafts, cat, 1),
		Finalize:   billing.NewFinalizeInvoiceUseCase(drafts, store, cat, true, log),
		Invoices:   billing.NewInvoiceUseCase(store.Invoices(), cat, log),
		InvoicePDF: billing.NewPDFUseCase(store.Invoices(), cat, gen),
		Ledger:     ledger.NewLedgerUseCase(store.Invoices(), store.Transactions(), cat, bankingUC, gen, log),
		Banking:    bankingUC,
		Catalog:    catalog.NewCatalogUseCase(cat, cat, log),
		JWTSecret:  testJWTSecret,
		Log:        log,
	})
	return app
}

func call(t *testing.T, app *fiber.App, role, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	if out != nil && resp.StatusCode >= 400 {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode
}

// openSale abre una venta para Ana con n unidades de Café fechada el 10/01/2024.
func openSale(t *testing.T, app *fiber.App, qty int64) string {
	t.Helper()
	var d dto.DraftResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts", dto.OpenDraftRequest{Mode: "sale"}, &d))

	steps := []dto.DraftActionRequest{
		{Type: dto.ActionSetPerson, PersonID: 1, PersonType: "customer"},
		{Type: dto.ActionAddItem, ProductID: 1},
		{Type: dto.ActionSetIssueDate, Date: "2024-01-10"},
	}
	for _, s := range steps {
		require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+d.ID+"/actions", s, &d))
	}
	require.Len(t, d.Items, 1)
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+d.ID+"/actions",
		dto.DraftActionRequest{Type: dto.ActionUpdateItemQuantity, RowID: d.Items[0].RowID, Quantity: decimal.NewFromInt(qty)}, &d))
	return d.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_VentaReciboYEstadoDeCuenta(t *testing.T) {
	app := newAPI(t)
	draftID := openSale(t, app, 2)

	var inv dto.InvoiceResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+draftID+"/finalize", nil, &inv))
	assert.Equal(t, "sale", inv.Kind)
	assert.Equal(t, int64(1), inv.InvoiceNumber)
	assert.Equal(t, "Ana", inv.PersonName)
	assert.True(t, dec("2400").Equal(inv.GrandTotal))

	// el formulario finalizado ya no existe
	assert.Equal(t, http.StatusNotFound, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/drafts/"+draftID, nil, nil))

	var acc dto.BankAccountResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/accounts",
		dto.CreateBankAccountRequest{BankName: "Banco", AccountNumber: "001"}, &acc))

	var tx dto.TransactionResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/transactions",
		dto.TransactionRequest{AccountID: acc.ID, Date: "2024-01-15", Type: "receipt", Amount: dec("400"), CustomerID: 1}, &tx))

	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/accounts/1", nil, &acc))
	assert.True(t, dec("400").Equal(acc.Balance))

	var st dto.LedgerResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/ledger/customer/1", nil, &st))
	require.Len(t, st.Entries, 2)
	assert.Equal(t, "sale", st.Entries[0].Type)
	assert.Equal(t, "payment", st.Entries[1].Type)
	assert.True(t, dec("2000").Equal(st.Balance))

	// borrar el recibo desde el estado de cuenta revierte el saldo bancario
	require.Equal(t, http.StatusNoContent, call(t, app, pkgjwt.RoleAdmin, http.MethodDelete, "/api/ledger/entries/payment/"+tx.ID, nil, nil))
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/accounts/1", nil, &acc))
	assert.True(t, acc.Balance.IsZero())
}

func TestAPI_StockInsuficiente_422YFormularioIntacto(t *testing.T) {
	app := newAPI(t)
	draftID := openSale(t, app, 10)

	var verr dto.ValidationErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+draftID+"/finalize", nil, &verr))
	assert.Equal(t, "INSUFFICIENT_STOCK", verr.Code)
	assert.Equal(t, "Café", verr.ProductName)
	assert.True(t, dec("5").Equal(verr.Available))

	var d dto.DraftResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/drafts/"+draftID, nil, &d))
	assert.Equal(t, int64(1), d.CustomerID)
	assert.True(t, dec("12000").Equal(d.GrandTotal))
}

func TestAPI_SinTercero_422(t *testing.T) {
	app := newAPI(t)
	var d dto.DraftResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts", dto.OpenDraftRequest{Mode: "purchase"}, &d))

	var verr dto.ValidationErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+d.ID+"/finalize", nil, &verr))
	assert.Equal(t, "NO_PERSON_SELECTED", verr.Code)
}

func TestAPI_CajeroNoPuedeBorrarDocumentos(t *testing.T) {
	app := newAPI(t)
	var inv dto.InvoiceResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+openSale(t, app, 1)+"/finalize", nil, &inv))

	assert.Equal(t, http.StatusForbidden, call(t, app, pkgjwt.RoleCashier, http.MethodDelete, "/api/invoices/"+inv.ID, nil, nil))
	assert.Equal(t, http.StatusNoContent, call(t, app, pkgjwt.RoleAdmin, http.MethodDelete, "/api/invoices/"+inv.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, pkgjwt.RoleAdmin, http.MethodGet, "/api/invoices/"+inv.ID, nil, nil))
}

func TestAPI_ValidacionDeEntrada(t *testing.T) {
	app := newAPI(t)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts", dto.OpenDraftRequest{Mode: "gift"}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	assert.Equal(t, http.StatusBadRequest, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/ledger/customer/abc", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/ledger/customer/1?from=10-01-2024", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/invoices?kind=gift", nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/drafts/no-existe", nil, nil))
}

func TestAPI_DescargaPDF(t *testing.T) {
	app := newAPI(t)
	var inv dto.InvoiceResponse
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleCashier, http.MethodPost, "/api/drafts/"+openSale(t, app, 1)+"/finalize", nil, &inv))

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sale_1.pdf")
}

func TestAPI_Catalogo(t *testing.T) {
	app := newAPI(t)
	var products []dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleCashier, http.MethodGet, "/api/products", nil, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Café", products[0].Name)
}
