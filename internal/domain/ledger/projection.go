// Package ledger proyecta el estado de cuenta de un cliente o proveedor a partir de
// sus documentos y movimientos de caja. Es una vista: se recalcula en cada lectura.
//
// Regla de signos (única para toda la aplicación): el dinero o valor que sale del
// tercero hacia nosotros es crédito; lo que sale de nosotros hacia el tercero es débito.
//
//	cliente:   venta = débito, devolución = crédito, recibo = crédito, pago = débito
//	proveedor: compra = crédito, devolución = débito, pago = débito, recibo = crédito
//
// Saldo = Σ(débito - crédito). Positivo: el tercero nos debe; negativo: le debemos.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// EntryType origen de una línea del estado de cuenta.
type EntryType string

const (
	EntrySale           EntryType = "sale"
	EntryPurchase       EntryType = "purchase"
	EntryReturn         EntryType = "return"
	EntryPurchaseReturn EntryType = "purchaseReturn"
	EntryPayment        EntryType = "payment"
)

// Entry línea derivada del estado de cuenta.
type Entry struct {
	ID            string
	Type          EntryType
	Date          time.Time
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Balance       decimal.Decimal // saldo acumulado hasta esta línea
	InvoiceNumber int64
}

// Person tercero del estado de cuenta.
type Person struct {
	Type entity.PersonType
	ID   int64
	Name string
}

// Sources colecciones completas; Project filtra por tercero.
type Sources struct {
	Sales           []entity.Invoice
	Purchases       []entity.Invoice
	SalesReturns    []entity.Invoice
	PurchaseReturns []entity.Invoice
	Transactions    []entity.Transaction
}

// Statement estado de cuenta ordenado por fecha con saldo acumulado.
type Statement struct {
	Person      Person
	Entries     []Entry
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal // saldo de la última línea (0 si no hay líneas)
}

// Project arma el estado de cuenta del tercero.
func Project(p Person, src Sources) Statement {
	var entries []Entry
	switch p.Type {
	case entity.PersonCustomer:
		for _, inv := range src.Sales {
			if inv.CustomerID == p.ID {
				entries = append(entries, invoiceEntry(inv, EntrySale, "Factura de venta", true))
			}
		}
		for _, inv := range src.SalesReturns {
			if inv.CustomerID == p.ID {
				entries = append(entries, invoiceEntry(inv, EntryReturn, "Devolución de venta", false))
			}
		}
	case entity.PersonSupplier:
		for _, inv := range src.Purchases {
			if inv.SupplierID == p.ID {
				entries = append(entries, invoiceEntry(inv, EntryPurchase, "Factura de compra", false))
			}
		}
		for _, inv := range src.PurchaseReturns {
			if inv.SupplierID == p.ID {
				entries = append(entries, invoiceEntry(inv, EntryPurchaseReturn, "Devolución de compra", true))
			}
		}
	}
	for _, tx := range src.Transactions {
		if belongsTo(tx, p) {
			entries = append(entries, transactionEntry(tx))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	st := Statement{
		Person:      p,
		Entries:     entries,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
	}
	balance := decimal.Zero
	for i := range st.Entries {
		e := &st.Entries[i]
		balance = balance.Add(e.Debit).Sub(e.Credit)
		e.Balance = balance
		st.TotalDebit = st.TotalDebit.Add(e.Debit)
		st.TotalCredit = st.TotalCredit.Add(e.Credit)
	}
	st.Balance = balance
	return st
}

func belongsTo(tx entity.Transaction, p Person) bool {
	switch p.Type {
	case entity.PersonCustomer:
		return tx.CustomerID != 0 && tx.CustomerID == p.ID
	case entity.PersonSupplier:
		return tx.SupplierID != 0 && tx.SupplierID == p.ID
	}
	return false
}

func invoiceEntry(inv entity.Invoice, t EntryType, label string, debit bool) Entry {
	desc := label
	if inv.InvoiceNumber > 0 {
		desc = fmt.Sprintf("%s N° %d", label, inv.InvoiceNumber)
	}
	e := Entry{
		ID:            inv.ID,
		Type:          t,
		Date:          inv.IssueDate,
		Description:   desc,
		Debit:         decimal.Zero,
		Credit:        decimal.Zero,
		InvoiceNumber: inv.InvoiceNumber,
	}
	if debit {
		e.Debit = inv.GrandTotal
	} else {
		e.Credit = inv.GrandTotal
	}
	return e
}

// transactionEntry: recibo (entra dinero del tercero) = crédito, pago (sale hacia el tercero) = débito.
func transactionEntry(tx entity.Transaction) Entry {
	e := Entry{
		ID:          tx.ID,
		Type:        EntryPayment,
		Date:        tx.Date,
		Description: tx.Description,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	if tx.Type == entity.TransactionReceipt {
		e.Credit = tx.Amount
		if e.Description == "" {
			e.Description = "Recibo de caja"
		}
	} else {
		e.Debit = tx.Amount
		if e.Description == "" {
			e.Description = "Comprobante de pago"
		}
	}
	return e
}
