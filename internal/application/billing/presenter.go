package billing

import (
	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

// productName nombre del producto o la etiqueta de registro faltante.
func productName(catalog repository.Catalog, id int64) string {
	if p, err := catalog.ProductByID(id); err == nil && p != nil {
		return p.Name
	}
	return domain.FallbackLabel
}

// personName nombre del tercero del documento o la etiqueta de registro faltante.
func personName(catalog repository.Catalog, inv *entity.Invoice) string {
	switch {
	case inv.CustomerID != 0:
		if c, err := catalog.CustomerByID(inv.CustomerID); err == nil && c != nil {
			return c.Name
		}
	case inv.SupplierID != 0:
		if s, err := catalog.SupplierByID(inv.SupplierID); err == nil && s != nil {
			return s.Name
		}
	}
	return domain.FallbackLabel
}

func toInvoiceResponse(inv *entity.Invoice, catalog repository.Catalog) dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ProductID:   it.ProductID,
			ProductName: productName(catalog, it.ProductID),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		})
	}
	return dto.InvoiceResponse{
		ID:              inv.ID,
		Kind:            string(inv.Kind),
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		SupplierID:      inv.SupplierID,
		PersonName:      personName(catalog, inv),
		IssueDate:       inv.IssueDate.Format(dto.DateLayout),
		Items:           items,
		Subtotal:        inv.Subtotal,
		DiscountAmount:  inv.DiscountAmount,
		DiscountPercent: inv.DiscountPercent,
		Tax:             inv.Tax,
		GrandTotal:      inv.GrandTotal,
	}
}

func toDraftResponse(s *draft.Session) *dto.DraftResponse {
	rows := make([]dto.DraftRowResponse, 0, len(s.State.Items))
	for _, r := range s.State.Items {
		rows = append(rows, dto.DraftRowResponse{
			RowID:       r.RowID,
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			LineTotal:   r.LineTotal(),
		})
	}
	return &dto.DraftResponse{
		ID:               s.ID,
		Mode:             string(s.Mode),
		ReturnPersonType: string(s.ReturnPersonType),
		CustomerID:       s.State.CustomerID,
		SupplierID:       s.State.SupplierID,
		IssueDate:        s.State.IssueDate.Format(dto.DateLayout),
		Items:            rows,
		Subtotal:         s.State.Subtotal,
		DiscountAmount:   s.State.DiscountAmount,
		DiscountPercent:  s.State.DiscountPercent,
		Tax:              s.State.Tax,
		GrandTotal:       s.State.GrandTotal,
	}
}
