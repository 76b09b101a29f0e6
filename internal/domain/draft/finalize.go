package draft

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// StockLookup consulta de solo lectura usada para validar existencias al vender.
type StockLookup interface {
	ProductByID(id int64) (*entity.Product, error)
	StockOf(productID, warehouseID int64) (decimal.Decimal, error)
}

// FinalizeInput parámetros de la finalización.
// ReturnPersonType solo aplica en modo devolución; vacío = se deduce del tercero elegido.
type FinalizeInput struct {
	ReturnPersonType entity.PersonType
	CheckStock       bool
	Stock            StockLookup
}

// Finalized documento validado, listo para recibir ID y consecutivo.
type Finalized struct {
	Kind            entity.InvoiceKind
	CustomerID      int64
	SupplierID      int64
	Items           []entity.InvoiceItem
	Totals          Totals
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	Tax             decimal.Decimal
	DiscountFixed   bool // el estado traía ambos descuentos y se corrigió
}

// Kind colección destino según el modo (y el selector de devolución).
func (e *Engine) Kind(s State, returnPersonType entity.PersonType) entity.InvoiceKind {
	switch e.mode {
	case ModeSale:
		return entity.KindSale
	case ModePurchase:
		return entity.KindPurchase
	case ModeProforma:
		return entity.KindProforma
	}
	switch returnPersonType {
	case entity.PersonSupplier:
		return entity.KindPurchaseReturn
	case entity.PersonCustomer:
		return entity.KindSalesReturn
	}
	if s.SupplierID != 0 {
		return entity.KindPurchaseReturn
	}
	return entity.KindSalesReturn
}

// Finalize valida el borrador y devuelve el documento sin campos de pantalla.
// Los errores son *domain.ValidationError (o el error de la consulta de stock);
// el estado recibido no se modifica.
func (e *Engine) Finalize(s State, in FinalizeInput) (*Finalized, error) {
	kind := e.Kind(s, in.ReturnPersonType)
	if !personMatches(kind, s) {
		return nil, &domain.ValidationError{Code: domain.CodeNoPersonSelected}
	}

	var rows []Row
	for _, r := range s.Items {
		if r.ProductID > 0 && r.Quantity.IsPositive() {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ValidationError{Code: domain.CodeNoValidItems}
	}

	if e.mode == ModeSale && in.CheckStock && in.Stock != nil {
		if err := checkStock(rows, in.Stock); err != nil {
			return nil, err
		}
	}

	items := make([]entity.InvoiceItem, len(rows))
	for i, r := range rows {
		items[i] = r.InvoiceItem
	}
	amount, percent, fixed := NormalizeDiscounts(s.DiscountAmount, s.DiscountPercent)
	out := &Finalized{
		Kind:            kind,
		Items:           items,
		Totals:          ComputeTotals(items, amount, percent, s.Tax),
		DiscountAmount:  amount,
		DiscountPercent: percent,
		Tax:             s.Tax,
		DiscountFixed:   fixed,
	}
	switch kind {
	case entity.KindSale, entity.KindSalesReturn:
		out.CustomerID = s.CustomerID
	case entity.KindPurchase, entity.KindPurchaseReturn:
		out.SupplierID = s.SupplierID
	default:
		out.CustomerID, out.SupplierID = s.CustomerID, s.SupplierID
	}
	return out, nil
}

// personMatches: ventas y devoluciones de venta exigen cliente, compras y devoluciones
// de compra exigen proveedor; la proforma acepta cualquiera.
func personMatches(kind entity.InvoiceKind, s State) bool {
	switch kind {
	case entity.KindSale, entity.KindSalesReturn:
		return s.CustomerID != 0
	case entity.KindPurchase, entity.KindPurchaseReturn:
		return s.SupplierID != 0
	}
	return s.PersonSelected()
}

type stockKey struct {
	productID   int64
	warehouseID int64
}

// checkStock suma lo pedido por producto y bodega (varias filas del mismo producto
// cuentan juntas) y lo compara con el stock disponible.
func checkStock(rows []Row, lookup StockLookup) error {
	requested := make(map[stockKey]decimal.Decimal)
	var order []stockKey
	for _, r := range rows {
		k := stockKey{r.ProductID, r.WarehouseID}
		if _, ok := requested[k]; !ok {
			order = append(order, k)
		}
		requested[k] = requested[k].Add(r.Quantity)
	}
	for _, k := range order {
		available, err := lookup.StockOf(k.productID, k.warehouseID)
		if err != nil {
			return err
		}
		if requested[k].GreaterThan(available) {
			name := domain.FallbackLabel
			if p, err := lookup.ProductByID(k.productID); err == nil && p != nil {
				name = p.Name
			}
			return &domain.ValidationError{
				Code:        domain.CodeInsufficientStock,
				ProductID:   k.productID,
				ProductName: name,
				Requested:   requested[k],
				Available:   available,
			}
		}
	}
	return nil
}
