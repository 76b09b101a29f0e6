package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/jhoicas/tienda-contable/internal/application/billing"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

var invoiceColumns = []column{
	{"Cant.", 1, align.Center},
	{"Producto", 6, align.Left},
	{"Precio Unit.", 2, align.Right},
	{"Subtotal", 3, align.Right},
}

var invoiceTitles = map[entity.InvoiceKind]string{
	entity.KindSale:           "FACTURA DE VENTA",
	entity.KindPurchase:       "FACTURA DE COMPRA",
	entity.KindSalesReturn:    "DEVOLUCIÓN DE VENTA",
	entity.KindPurchaseReturn: "DEVOLUCIÓN DE COMPRA",
	entity.KindProforma:       "COTIZACIÓN (PROFORMA)",
}

// GenerateInvoicePDF genera el PDF de un documento registrado.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	if inv == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	title := nonEmpty(invoiceTitles[inv.Kind], string(inv.Kind))
	m := g.newDocument(title)

	m.AddRows(headerRow(title, g.storeName, invoiceReference(inv), "Fecha: "+inv.IssueDate.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(personRow(personLabel(inv), doc.PersonName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(invoiceColumns))
	for _, l := range doc.Lines {
		m.AddRows(tableRow(invoiceColumns,
			l.Quantity.String(),
			l.ProductName,
			money(l.UnitPrice),
			money(l.LineTotal()),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotals(inv)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(referenceRow(inv))
	m.AddRows(footerRow(nonEmpty(g.storeName, "Tienda") + " · documento generado por el sistema"))

	return render(m)
}

func invoiceReference(inv *entity.Invoice) string {
	if inv.InvoiceNumber > 0 {
		return fmt.Sprintf("N° %d", inv.InvoiceNumber)
	}
	return "Ref. " + inv.ID[:min(8, len(inv.ID))]
}

func personLabel(inv *entity.Invoice) string {
	if inv.PersonType() == entity.PersonSupplier {
		return "PROVEEDOR"
	}
	return "CLIENTE"
}

func invoiceTotals(inv *entity.Invoice) []core.Row {
	t := draft.ComputeTotals(inv.Items, inv.DiscountAmount, inv.DiscountPercent, inv.Tax)
	rows := []core.Row{totalLine("Subtotal:", money(inv.Subtotal), false)}
	if t.Discount.IsPositive() {
		label := "Descuento:"
		if inv.DiscountPercent.IsPositive() {
			label = "Descuento (" + inv.DiscountPercent.String() + "%):"
		}
		rows = append(rows, totalLine(label, money(t.Discount.Neg()), false))
	}
	if inv.Tax.IsPositive() {
		rows = append(rows, totalLine("Impuesto ("+inv.Tax.String()+"%):", money(inv.GrandTotal.Sub(t.AfterDiscount)), false))
	}
	return append(rows, totalLine("TOTAL:", money(inv.GrandTotal), true))
}

// referenceRow QR con el identificador interno del documento (consulta rápida en caja).
func referenceRow(inv *entity.Invoice) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(inv.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Identificador del documento:", props.Text{Size: 7, Top: 8, Left: 3, Color: colorGray}),
			text.New(inv.ID, props.Text{Size: 8, Top: 13, Left: 3}),
		),
	)
}
