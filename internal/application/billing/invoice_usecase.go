package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// InvoiceUseCase consulta, edición y borrado de documentos ya registrados.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	catalog     repository.Catalog
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, catalog repository.Catalog, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		catalog:     catalog,
		log:         log.WithComponent("billing"),
		now:         time.Now,
	}
}

// Get devuelve un documento con nombres resueltos.
func (uc *InvoiceUseCase) Get(_ context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	out := toInvoiceResponse(inv, uc.catalog)
	return &out, nil
}

// List lista los documentos de un tipo.
func (uc *InvoiceUseCase) List(_ context.Context, kind string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	k := entity.InvoiceKind(kind)
	if !k.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, kind)
	}
	page.DefaultPage()
	list, err := uc.invoiceRepo.ListByKind(k, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for i := range list {
		out.Items = append(out.Items, toInvoiceResponse(&list[i], uc.catalog))
	}
	return out, nil
}

// Update reemplaza líneas, tercero, fecha y descuentos de un documento y recalcula sus totales
// con las mismas reglas del formulario. ID, tipo y consecutivo se conservan.
func (uc *InvoiceUseCase) Update(_ context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(id)
	if err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID <= 0 || !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea inválida (producto %d)", domain.ErrInvalidInput, it.ProductID)
		}
		items = append(items, entity.InvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	switch inv.Kind {
	case entity.KindSale, entity.KindSalesReturn:
		if in.CustomerID != 0 {
			inv.CustomerID = in.CustomerID
		}
	case entity.KindPurchase, entity.KindPurchaseReturn:
		if in.SupplierID != 0 {
			inv.SupplierID = in.SupplierID
		}
	default:
		if in.CustomerID != 0 && in.SupplierID != 0 {
			return nil, fmt.Errorf("%w: cliente y proveedor son excluyentes", domain.ErrInvalidInput)
		}
		if in.CustomerID != 0 || in.SupplierID != 0 {
			inv.CustomerID, inv.SupplierID = in.CustomerID, in.SupplierID
		}
	}
	if in.IssueDate != "" {
		t, err := time.Parse(dto.DateLayout, in.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.IssueDate)
		}
		inv.IssueDate = t
	}

	amount, percent, fixed := draft.NormalizeDiscounts(in.DiscountAmount, in.DiscountPercent)
	if fixed {
		uc.log.Warn().Str("invoice_id", id).Msg("descuento fijo y porcentual a la vez; se conservó el fijo")
	}
	totals := draft.ComputeTotals(items, amount, percent, in.Tax)
	inv.Items = items
	inv.DiscountAmount = amount
	inv.DiscountPercent = percent
	inv.Tax = in.Tax
	inv.Subtotal = totals.Subtotal
	inv.GrandTotal = totals.GrandTotal
	inv.UpdatedAt = uc.now()

	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice_id", id).Str("grand_total", inv.GrandTotal.String()).Msg("documento actualizado")
	out := toInvoiceResponse(inv, uc.catalog)
	return &out, nil
}

// Delete borra el documento. Su línea desaparece del estado de cuenta en la siguiente lectura.
func (uc *InvoiceUseCase) Delete(_ context.Context, id string) error {
	if err := uc.invoiceRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("documento eliminado")
	return nil
}

func (uc *InvoiceUseCase) load(id string) (*entity.Invoice, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
