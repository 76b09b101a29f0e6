package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// FinalizeInvoiceUseCase convierte un formulario en documento persistido.
// El formulario se reclama (Take) antes de la transacción, así un doble envío
// no registra dos documentos. Validación, consecutivo e inserción corren en una
// sola transacción; si algo falla el formulario se devuelve al store para que
// el usuario lo corrija.
type FinalizeInvoiceUseCase struct {
	store      repository.DraftStore
	txRunner   repository.TxRunner
	catalog    repository.Catalog
	checkStock bool
	log        *logger.Logger
	now        func() time.Time
}

// NewFinalizeInvoiceUseCase construye el caso de uso. checkStock activa la validación de existencias en ventas.
func NewFinalizeInvoiceUseCase(
	store repository.DraftStore,
	txRunner repository.TxRunner,
	catalog repository.Catalog,
	checkStock bool,
	log *logger.Logger,
) *FinalizeInvoiceUseCase {
	return &FinalizeInvoiceUseCase{
		store:      store,
		txRunner:   txRunner,
		catalog:    catalog,
		checkStock: checkStock,
		log:        log.WithComponent("billing"),
		now:        time.Now,
	}
}

// Finalize valida el formulario, asigna ID y consecutivo y lo guarda en su colección.
// Errores de validación: *domain.ValidationError (NO_PERSON_SELECTED, NO_VALID_ITEMS, INSUFFICIENT_STOCK).
func (uc *FinalizeInvoiceUseCase) Finalize(ctx context.Context, draftID string) (*dto.InvoiceResponse, error) {
	sess, err := uc.store.Take(ctx, draftID)
	if err != nil {
		return nil, err
	}
	engine := draft.NewEngine(sess.Mode)

	var (
		inv   *entity.Invoice
		fixed bool
	)
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		fin, err := engine.Finalize(sess.State, draft.FinalizeInput{
			ReturnPersonType: sess.ReturnPersonType,
			CheckStock:       uc.checkStock,
			Stock:            r.Catalog,
		})
		if err != nil {
			return err
		}
		fixed = fin.DiscountFixed

		var number int64
		if fin.Kind.Numbered() {
			max, err := r.Invoices.MaxNumber(fin.Kind)
			if err != nil {
				return err
			}
			number = draft.NextInvoiceNumber(fin.Kind, max)
		}

		now := uc.now()
		issue := sess.State.IssueDate
		if issue.IsZero() {
			issue = draft.CalendarDay(now)
		}
		inv = &entity.Invoice{
			ID:              uuid.NewString(),
			Kind:            fin.Kind,
			InvoiceNumber:   number,
			CustomerID:      fin.CustomerID,
			SupplierID:      fin.SupplierID,
			Items:           fin.Items,
			IssueDate:       issue,
			Subtotal:        fin.Totals.Subtotal,
			DiscountAmount:  fin.DiscountAmount,
			DiscountPercent: fin.DiscountPercent,
			Tax:             fin.Tax,
			GrandTotal:      fin.Totals.GrandTotal,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return r.Invoices.Create(inv)
	})
	if err != nil {
		if rerr := uc.store.Save(context.WithoutCancel(ctx), sess); rerr != nil {
			uc.log.Error().Err(rerr).Str("draft_id", draftID).Msg("no se pudo restaurar el formulario")
		}
		return nil, err
	}

	if fixed {
		uc.log.Warn().Str("draft_id", draftID).Str("invoice_id", inv.ID).
			Msg("el formulario traía descuento fijo y porcentual; se conservó el fijo")
	}
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("kind", string(inv.Kind)).
		Int64("number", inv.InvoiceNumber).
		Str("grand_total", inv.GrandTotal.String()).
		Msg("documento registrado")

	out := toInvoiceResponse(inv, uc.catalog)
	return &out, nil
}
