package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/application/billing"
	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	drafts   *billing.DraftUseCase
	finalize *billing.FinalizeInvoiceUseCase
	invoices *billing.InvoiceUseCase
}

func newFixture(t *testing.T, checkStock bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	draftStore := memory.NewDraftStore(time.Hour)
	cat := store.Catalog()

	require.NoError(t, cat.UpsertWarehouse(&entity.Warehouse{ID: 1, Name: "Bodega principal"}))
	require.NoError(t, cat.UpsertProduct(&entity.Product{ID: 1, Name: "Café", RetailPrice: dec("1200"), WarehouseID: 1}))
	require.NoError(t, cat.UpsertProduct(&entity.Product{ID: 2, Name: "Bolsa", RetailPrice: dec("100"), WarehouseID: 1, AllowDuplicate: true}))
	require.NoError(t, cat.UpsertStock(&entity.Stock{ProductID: 1, WarehouseID: 1, Quantity: dec("3")}))
	require.NoError(t, cat.UpsertCustomer(&entity.Customer{ID: 1, Name: "Ana"}))
	require.NoError(t, cat.UpsertSupplier(&entity.Supplier{ID: 1, Name: "Distribuidora"}))

	log := logger.Nop()
	return &fixture{
		store:    store,
		drafts:   billing.NewDraftUseCase(draftStore, cat, 1),
		finalize: billing.NewFinalizeInvoiceUseCase(draftStore, store, cat, checkStock, log),
		invoices: billing.NewInvoiceUseCase(store.Invoices(), cat, log),
	}
}

// open abre un formulario, elige tercero y agrega productos (uno por acción).
func (f *fixture) open(t *testing.T, mode, personType string, products ...int64) *dto.DraftResponse {
	t.Helper()
	ctx := context.Background()
	d, err := f.drafts.Open(ctx, dto.OpenDraftRequest{Mode: mode})
	require.NoError(t, err)
	if personType != "" {
		d, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionSetPerson, PersonType: personType, PersonID: 1})
		require.NoError(t, err)
	}
	for _, id := range products {
		d, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionAddItem, ProductID: id})
		require.NoError(t, err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Formulario
// ──────────────────────────────────────────────────────────────────────────────

func TestDraft_AccionesRecalculanTotales(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	d := f.open(t, "sale", "customer", 1, 1, 2, 2)
	// Café no admite duplicados (una fila, cantidad 2); Bolsa sí (dos filas)
	require.Len(t, d.Items, 3)
	assert.True(t, d.Items[0].Quantity.Equal(dec("2")))
	assert.True(t, d.Subtotal.Equal(dec("2600")))

	d, err := f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionSetTax, Value: dec("19")})
	require.NoError(t, err)
	assert.True(t, d.GrandTotal.Equal(dec("3094")))

	d, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionRemoveItem, RowID: d.Items[2].RowID})
	require.NoError(t, err)
	assert.Len(t, d.Items, 2)
	assert.True(t, d.Subtotal.Equal(dec("2500")))

	d, err = f.drafts.Reset(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.Zero(t, d.Items[0].ProductID)
	assert.Zero(t, d.CustomerID)
	assert.True(t, d.GrandTotal.IsZero())
}

func TestDraft_EntradaInvalida(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.drafts.Open(ctx, dto.OpenDraftRequest{Mode: "quote"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.drafts.Open(ctx, dto.OpenDraftRequest{Mode: "sale", ReturnPersonType: "customer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d := f.open(t, "sale", "")
	_, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionAddItem, ProductID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionUpdateItemQuantity, Quantity: dec("2")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionSetIssueDate, Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.drafts.Discard(ctx, d.ID))
	_, err = f.drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalización: colección destino y consecutivo
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_ConsecutivoPorTipo(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	var numbers []int64
	for i := 0; i < 2; i++ {
		inv, err := f.finalize.Finalize(ctx, f.open(t, "sale", "customer", 2).ID)
		require.NoError(t, err)
		assert.Equal(t, "sale", inv.Kind)
		numbers = append(numbers, inv.InvoiceNumber)
	}
	assert.Equal(t, []int64{1, 2}, numbers)

	purchase, err := f.finalize.Finalize(ctx, f.open(t, "purchase", "supplier", 2).ID)
	require.NoError(t, err)
	assert.Equal(t, "purchase", purchase.Kind)
	assert.EqualValues(t, 1, purchase.InvoiceNumber)
	assert.Equal(t, "Distribuidora", purchase.PersonName)

	proforma, err := f.finalize.Finalize(ctx, f.open(t, "proforma", "customer", 2).ID)
	require.NoError(t, err)
	assert.Zero(t, proforma.InvoiceNumber)
}

func TestFinalize_DevolucionSegunTercero(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	inv, err := f.finalize.Finalize(ctx, f.open(t, "return", "supplier", 2).ID)
	require.NoError(t, err)
	assert.Equal(t, "purchase_return", inv.Kind)
	assert.Zero(t, inv.InvoiceNumber)

	inv, err = f.finalize.Finalize(ctx, f.open(t, "return", "customer", 2).ID)
	require.NoError(t, err)
	assert.Equal(t, "sales_return", inv.Kind)
}

func TestFinalize_DescartaFilasVaciasYFormulario(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	d := f.open(t, "sale", "customer", 2)
	d, err := f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionAddEmptyRow})
	require.NoError(t, err)
	require.Len(t, d.Items, 2)

	inv, err := f.finalize.Finalize(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Bolsa", inv.Items[0].ProductName)

	_, err = f.drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinalize_DobleEnvioRegistraUnSoloDocumento(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	d := f.open(t, "sale", "customer", 2)

	const envios = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, envios)
	)
	for i := 0; i < envios; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.finalize.Finalize(ctx, d.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Equal(t, 1, ok)

	list, err := f.invoices.List(ctx, "sale", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(1), list.Items[0].InvoiceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalización: validaciones (el formulario queda intacto)
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_Validaciones(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	casos := []struct {
		name string
		d    *dto.DraftResponse
		code string
	}{
		{"venta sin cliente", f.open(t, "sale", "", 2), domain.CodeNoPersonSelected},
		{"compra con cliente", f.open(t, "purchase", "customer", 2), domain.CodeNoPersonSelected},
		{"solo fila vacía", f.open(t, "sale", "customer"), domain.CodeNoValidItems},
	}
	for _, c := range casos {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.finalize.Finalize(ctx, c.d.ID)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Equal(t, c.code, ve.Code)

			kept, err := f.drafts.Get(ctx, c.d.ID)
			require.NoError(t, err)
			require.Len(t, kept.Items, len(c.d.Items))
			for i := range kept.Items {
				assert.Equal(t, c.d.Items[i].RowID, kept.Items[i].RowID)
				assert.Equal(t, c.d.Items[i].ProductID, kept.Items[i].ProductID)
				assert.True(t, c.d.Items[i].Quantity.Equal(kept.Items[i].Quantity))
			}
		})
	}

	list, err := f.invoices.List(ctx, "sale", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestFinalize_StockInsuficienteSumaFilas(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	// 2 filas de Café (stock 3): 2 + 2 supera la existencia aunque cada fila por sí sola no
	d := f.open(t, "sale", "customer", 1, 1)
	d, err := f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionAddEmptyRow})
	require.NoError(t, err)
	d, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionUpdateItemProduct, RowID: d.Items[1].RowID, ProductID: 1})
	require.NoError(t, err)
	d, err = f.drafts.Apply(ctx, d.ID, dto.DraftActionRequest{Type: dto.ActionUpdateItemQuantity, RowID: d.Items[1].RowID, Quantity: dec("2")})
	require.NoError(t, err)

	_, err = f.finalize.Finalize(ctx, d.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Café", ve.ProductName)
	assert.True(t, ve.Requested.Equal(dec("4")))
	assert.True(t, ve.Available.Equal(dec("3")))

	// la compra no valida existencias
	_, err = f.finalize.Finalize(ctx, f.open(t, "purchase", "supplier", 1, 1, 1, 1).ID)
	assert.NoError(t, err)
}

func TestFinalize_SinValidarStock(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.finalize.Finalize(context.Background(), f.open(t, "sale", "customer", 1, 1, 1, 1, 1).ID)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos registrados
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_UpdateRecalculaYConservaConsecutivo(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	inv, err := f.finalize.Finalize(ctx, f.open(t, "sale", "customer", 1).ID)
	require.NoError(t, err)

	up, err := f.invoices.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{
		Items:           []dto.InvoiceItemRequest{{ProductID: 2, Quantity: dec("10"), UnitPrice: dec("100")}},
		DiscountAmount:  dec("100"),
		DiscountPercent: dec("50"),
		Tax:             dec("10"),
		IssueDate:       "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNumber, up.InvoiceNumber)
	assert.Equal(t, "sale", up.Kind)
	assert.True(t, up.DiscountPercent.IsZero())
	assert.True(t, up.Subtotal.Equal(dec("1000")))
	assert.True(t, up.GrandTotal.Equal(dec("990")))
	assert.Equal(t, "2024-05-01", up.IssueDate)

	_, err = f.invoices.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: 2, Quantity: decimal.Zero, UnitPrice: dec("100")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.invoices.Delete(ctx, inv.ID))
	_, err = f.invoices.Get(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_ListTipoInvalido(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.invoices.List(context.Background(), "receipt", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
