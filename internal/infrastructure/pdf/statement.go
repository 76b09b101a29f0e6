package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/ledger"
)

var statementColumns = []column{
	{"Fecha", 2, align.Left},
	{"Descripción", 4, align.Left},
	{"Débito", 2, align.Right},
	{"Crédito", 2, align.Right},
	{"Saldo", 2, align.Right},
}

// GenerateStatementPDF genera el estado de cuenta del tramo w.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, st ledger.Statement, w ledger.Window) ([]byte, error) {
	m := g.newDocument("Estado de cuenta")

	label := "CLIENTE"
	if st.Person.Type == entity.PersonSupplier {
		label = "PROVEEDOR"
	}
	m.AddRows(headerRow("ESTADO DE CUENTA", g.storeName, fmt.Sprintf("%s #%d", label, st.Person.ID), periodLabel(w)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(personRow(label, st.Person.Name))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(statementColumns))
	if !w.From.IsZero() {
		m.AddRows(tableRow(statementColumns, w.From.Format("02/01/2006"), "Saldo anterior", "", "", money(w.Opening)))
	}
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range w.Entries {
		m.AddRows(tableRow(statementColumns,
			e.Date.Format("02/01/2006"),
			e.Description,
			moneyOrBlank(e.Debit),
			moneyOrBlank(e.Credit),
			money(e.Balance),
		))
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		totalLine("Total débitos:", money(debit), false),
		totalLine("Total créditos:", money(credit), false),
		totalLine("SALDO:", money(w.Closing), true),
	)
	m.AddRows(footerRow("Saldo positivo: el tercero nos debe. Saldo negativo: le debemos."))

	return render(m)
}

func periodLabel(w ledger.Window) string {
	switch {
	case w.From.IsZero() && w.To.IsZero():
		return "Toda la historia"
	case w.From.IsZero():
		return "Hasta " + w.To.Format("02/01/2006")
	case w.To.IsZero():
		return "Desde " + w.From.Format("02/01/2006")
	}
	return w.From.Format("02/01/2006") + " a " + w.To.Format("02/01/2006")
}

func moneyOrBlank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return money(d)
}
