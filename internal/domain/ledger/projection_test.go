package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/ledger"
)

func day(n int) time.Time { return time.Date(2024, 3, n, 10, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func balances(entries []ledger.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Balance.String()
	}
	return out
}

func TestProject_CustomerRunningBalance(t *testing.T) {
	src := ledger.Sources{
		Sales:        []entity.Invoice{{ID: "s1", Kind: entity.KindSale, InvoiceNumber: 1, CustomerID: 9, IssueDate: day(1), GrandTotal: dec("1000")}},
		SalesReturns: []entity.Invoice{{ID: "r1", Kind: entity.KindSalesReturn, CustomerID: 9, IssueDate: day(2), GrandTotal: dec("100")}},
		Transactions: []entity.Transaction{{ID: "t1", Type: entity.TransactionReceipt, CustomerID: 9, Date: day(3), Amount: dec("400")}},
	}

	st := ledger.Project(ledger.Person{Type: entity.PersonCustomer, ID: 9}, src)

	require.Len(t, st.Entries, 3)
	assert.Equal(t, []string{"1000", "900", "500"}, balances(st.Entries))
	assert.Equal(t, ledger.EntrySale, st.Entries[0].Type)
	assert.Equal(t, ledger.EntryReturn, st.Entries[1].Type)
	assert.Equal(t, ledger.EntryPayment, st.Entries[2].Type)
	assert.True(t, st.Balance.Equal(dec("500")))
	assert.True(t, st.TotalDebit.Equal(dec("1000")))
	assert.True(t, st.TotalCredit.Equal(dec("500")))
	assert.Equal(t, "Factura de venta N° 1", st.Entries[0].Description)
	assert.Equal(t, "Recibo de caja", st.Entries[2].Description)
}

func TestProject_FiltersOtherPeople(t *testing.T) {
	src := ledger.Sources{
		Sales: []entity.Invoice{
			{ID: "a", CustomerID: 1, IssueDate: day(1), GrandTotal: dec("10")},
			{ID: "b", CustomerID: 2, IssueDate: day(1), GrandTotal: dec("20")},
		},
		Purchases:    []entity.Invoice{{ID: "p", SupplierID: 1, IssueDate: day(1), GrandTotal: dec("99")}},
		Transactions: []entity.Transaction{{ID: "t", Type: entity.TransactionReceipt, SupplierID: 1, Date: day(2), Amount: dec("5")}},
	}

	st := ledger.Project(ledger.Person{Type: entity.PersonCustomer, ID: 1}, src)

	require.Len(t, st.Entries, 1)
	assert.Equal(t, "a", st.Entries[0].ID)
}

func TestProject_SupplierSigns(t *testing.T) {
	src := ledger.Sources{
		Purchases:       []entity.Invoice{{ID: "p1", SupplierID: 4, InvoiceNumber: 7, IssueDate: day(1), GrandTotal: dec("800")}},
		PurchaseReturns: []entity.Invoice{{ID: "pr", SupplierID: 4, IssueDate: day(2), GrandTotal: dec("50")}},
		Transactions:    []entity.Transaction{{ID: "t", Type: entity.TransactionPayment, SupplierID: 4, Date: day(3), Amount: dec("300")}},
	}

	st := ledger.Project(ledger.Person{Type: entity.PersonSupplier, ID: 4}, src)

	require.Len(t, st.Entries, 3)
	assert.True(t, st.Entries[0].Credit.Equal(dec("800")))
	assert.True(t, st.Entries[1].Debit.Equal(dec("50")))
	assert.True(t, st.Entries[2].Debit.Equal(dec("300")))
	assert.Equal(t, []string{"-800", "-750", "-450"}, balances(st.Entries))
}

func TestProject_StableSortOnSameDate(t *testing.T) {
	src := ledger.Sources{
		Sales: []entity.Invoice{
			{ID: "late", CustomerID: 1, IssueDate: day(5), GrandTotal: dec("1")},
			{ID: "first", CustomerID: 1, IssueDate: day(2), GrandTotal: dec("1")},
			{ID: "second", CustomerID: 1, IssueDate: day(2), GrandTotal: dec("1")},
		},
	}

	st := ledger.Project(ledger.Person{Type: entity.PersonCustomer, ID: 1}, src)

	ids := []string{st.Entries[0].ID, st.Entries[1].ID, st.Entries[2].ID}
	assert.Equal(t, []string{"first", "second", "late"}, ids)
}

func TestProject_Empty(t *testing.T) {
	st := ledger.Project(ledger.Person{Type: entity.PersonCustomer, ID: 1}, ledger.Sources{})

	assert.Empty(t, st.Entries)
	assert.True(t, st.Balance.IsZero())
}

func TestStatement_Window(t *testing.T) {
	src := ledger.Sources{
		Sales:        []entity.Invoice{{ID: "s1", CustomerID: 9, IssueDate: day(1), GrandTotal: dec("1000")}},
		SalesReturns: []entity.Invoice{{ID: "r1", CustomerID: 9, IssueDate: day(2), GrandTotal: dec("100")}},
		Transactions: []entity.Transaction{{ID: "t1", Type: entity.TransactionReceipt, CustomerID: 9, Date: day(3), Amount: dec("400")}},
	}
	st := ledger.Project(ledger.Person{Type: entity.PersonCustomer, ID: 9}, src)

	w := st.Window(day(2), day(2))

	require.Len(t, w.Entries, 1)
	assert.True(t, w.Opening.Equal(dec("1000")))
	assert.True(t, w.Closing.Equal(dec("900")))

	all := st.Window(time.Time{}, time.Time{})
	assert.Len(t, all.Entries, 3)
	assert.True(t, all.Closing.Equal(st.Balance))
}

func TestDeletionTarget(t *testing.T) {
	cases := map[ledger.EntryType]ledger.Collection{
		ledger.EntrySale:           ledger.CollectionSales,
		ledger.EntryPurchase:       ledger.CollectionPurchases,
		ledger.EntryReturn:         ledger.CollectionSalesReturns,
		ledger.EntryPurchaseReturn: ledger.CollectionPurchaseReturns,
		ledger.EntryPayment:        ledger.CollectionTransactions,
	}
	for typ, want := range cases {
		got, err := ledger.DeletionTarget(typ)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(typ))
	}

	_, err := ledger.DeletionTarget("bogus")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	kind, ok := ledger.CollectionSalesReturns.InvoiceKind()
	assert.True(t, ok)
	assert.Equal(t, entity.KindSalesReturn, kind)
	_, ok = ledger.CollectionTransactions.InvoiceKind()
	assert.False(t, ok)
}
