// Package ledger expone el estado de cuenta de clientes y proveedores.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/ledger"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// LedgerUseCase arma el estado de cuenta desde las colecciones y despacha borrados de líneas.
type LedgerUseCase struct {
	invoiceRepo repository.InvoiceRepository
	txRepo      repository.TransactionRepository
	catalog     repository.Catalog
	txDeleter   TransactionDeleter
	generator   StatementPDFGenerator
	log         *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	invoiceRepo repository.InvoiceRepository,
	txRepo repository.TransactionRepository,
	catalog repository.Catalog,
	txDeleter TransactionDeleter,
	generator StatementPDFGenerator,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		invoiceRepo: invoiceRepo,
		txRepo:      txRepo,
		catalog:     catalog,
		txDeleter:   txDeleter,
		generator:   generator,
		log:         log.WithComponent("ledger"),
	}
}

// Statement estado de cuenta del tercero. from/to en cero = sin límite.
func (uc *LedgerUseCase) Statement(_ context.Context, personType string, personID int64, from, to time.Time) (*dto.LedgerResponse, error) {
	st, err := uc.project(personType, personID)
	if err != nil {
		return nil, err
	}
	w := st.Window(from, to)

	out := &dto.LedgerResponse{
		PersonType:  string(st.Person.Type),
		PersonID:    st.Person.ID,
		PersonName:  st.Person.Name,
		Opening:     w.Opening,
		Entries:     make([]dto.LedgerEntryResponse, 0, len(w.Entries)),
		TotalDebit:  st.TotalDebit,
		TotalCredit: st.TotalCredit,
		Balance:     w.Closing,
	}
	if !from.IsZero() {
		out.From = from.Format(dto.DateLayout)
	}
	if !to.IsZero() {
		out.To = to.Format(dto.DateLayout)
	}
	if !from.IsZero() || !to.IsZero() {
		out.TotalDebit, out.TotalCredit = windowTotals(w.Entries)
	}
	for _, e := range w.Entries {
		out.Entries = append(out.Entries, dto.LedgerEntryResponse{
			ID:            e.ID,
			Type:          string(e.Type),
			Date:          e.Date.Format(dto.DateLayout),
			Description:   e.Description,
			InvoiceNumber: e.InvoiceNumber,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Balance:       e.Balance,
		})
	}
	return out, nil
}

// StatementPDF estado de cuenta impreso.
func (uc *LedgerUseCase) StatementPDF(ctx context.Context, personType string, personID int64, from, to time.Time) ([]byte, string, error) {
	st, err := uc.project(personType, personID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.generator.GenerateStatementPDF(ctx, st, st.Window(from, to))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("estado_cuenta_%s_%d.pdf", st.Person.Type, st.Person.ID), nil
}

// DeleteEntry borra el registro que origina una línea del estado de cuenta.
// Las facturas se borran de su colección; recibos y pagos revierten además el saldo bancario.
func (uc *LedgerUseCase) DeleteEntry(ctx context.Context, entryType, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	target, err := ledger.DeletionTarget(ledger.EntryType(entryType))
	if err != nil {
		return err
	}
	kind, isInvoice := target.InvoiceKind()
	if !isInvoice {
		return uc.txDeleter.DeleteTransaction(ctx, id)
	}

	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("obtener documento: %w", err)
	}
	if inv == nil || inv.Kind != kind {
		return domain.ErrNotFound
	}
	if err := uc.invoiceRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("collection", string(target)).Str("id", id).Msg("línea del estado de cuenta eliminada")
	return nil
}

func (uc *LedgerUseCase) project(personType string, personID int64) (ledger.Statement, error) {
	pt := entity.PersonType(personType)
	if !pt.Valid() || personID <= 0 {
		return ledger.Statement{}, fmt.Errorf("%w: tercero %s/%d", domain.ErrInvalidInput, personType, personID)
	}
	person := ledger.Person{Type: pt, ID: personID, Name: domain.FallbackLabel}

	var src ledger.Sources
	var err error
	switch pt {
	case entity.PersonCustomer:
		c, err := uc.catalog.CustomerByID(personID)
		if err != nil {
			return ledger.Statement{}, err
		}
		if c != nil {
			person.Name = c.Name
		}
		if src.Sales, err = uc.invoiceRepo.ListByPerson(entity.KindSale, pt, personID); err != nil {
			return ledger.Statement{}, err
		}
		if src.SalesReturns, err = uc.invoiceRepo.ListByPerson(entity.KindSalesReturn, pt, personID); err != nil {
			return ledger.Statement{}, err
		}
	case entity.PersonSupplier:
		s, err := uc.catalog.SupplierByID(personID)
		if err != nil {
			return ledger.Statement{}, err
		}
		if s != nil {
			person.Name = s.Name
		}
		if src.Purchases, err = uc.invoiceRepo.ListByPerson(entity.KindPurchase, pt, personID); err != nil {
			return ledger.Statement{}, err
		}
		if src.PurchaseReturns, err = uc.invoiceRepo.ListByPerson(entity.KindPurchaseReturn, pt, personID); err != nil {
			return ledger.Statement{}, err
		}
	}
	if src.Transactions, err = uc.txRepo.ListByPerson(pt, personID); err != nil {
		return ledger.Statement{}, err
	}
	return ledger.Project(person, src), nil
}

func windowTotals(entries []ledger.Entry) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}
